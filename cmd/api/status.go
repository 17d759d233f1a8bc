package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/ui"
)

func newStatusCmd(rt *cliEnv) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print today's checklist and streaks for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID = strings.TrimSpace(userID)
			if userID == "" {
				return errors.New("--user is required")
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			now := time.Now().In(rt.cfg.Timezone)

			snap, err := a.store.LoadAll(ctx, userID)
			if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
				rt.logger.Warn("status load failed", zap.String("user_id", userID), zap.Error(err))
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" could not load saved data, showing defaults"))
				snap = nil
			}
			tracker := domain.NewTracker(userID, snap, now)

			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Habit Tracker"))
			fmt.Fprintln(out, ui.LabelValue("User", userID))
			fmt.Fprintln(out, ui.LabelValue("Day", tracker.ViewLabel()))
			fmt.Fprintln(out, ui.LabelValue("Completion", fmt.Sprintf("%d%%", tracker.Completion())))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Habits"))
			for _, h := range tracker.Habits {
				fmt.Fprintln(out, "  "+ui.HabitLine(h))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.StreakPanel(tracker.Streaks(now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to report on")
	return cmd
}
