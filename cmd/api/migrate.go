package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/ui"
)

func newMigrateCmd(rt *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch rt.cfg.Backend {
			case config.BackendMemory:
				fmt.Fprintln(out, ui.Muted.Render("memory backend has no schema"))
				return nil

			case config.BackendLocal:
				// OpenSQLite applies the schema itself.
				db, err := repository.OpenSQLite(ctx, rt.cfg.SQLitePath)
				if err != nil {
					return err
				}
				defer db.Close()

			case config.BackendRemote:
				db, err := repository.ConnectPostgres(ctx, rt.cfg.PostgresDSN())
				if err != nil {
					return err
				}
				defer db.Close()
				if err := repository.Migrate(ctx, db, repository.DialectPostgres); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" schema up to date"),
				ui.Muted.Render("("+string(rt.cfg.Backend)+")"))
			return nil
		},
	}
}
