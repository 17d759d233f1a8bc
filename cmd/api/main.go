// @title           Habit Tracker API
// @version         1.0
// @description     Daily habit checklist with exercise and learning streaks.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/logger"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/ui"
)

const version = "0.1.0"

// cliEnv is filled by the root command before any subcommand runs.
type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliEnv{}

	rootCmd := &cobra.Command{
		Use:           "habits",
		Short:         "Habit tracker server and tools",
		Long:          "A daily habit checklist with exercise and learning streaks, served over HTTP.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, foundEnv, err := config.Load()
			if err != nil {
				return err
			}
			l, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			if !foundEnv {
				l.Debug("no .env file found, using environment only")
			}
			rt.cfg = cfg
			rt.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	serveCmd := newServeCmd(rt)
	rootCmd.AddCommand(
		serveCmd,
		newMigrateCmd(rt),
		newStatusCmd(rt),
	)
	// Running the binary without a subcommand starts the server.
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
