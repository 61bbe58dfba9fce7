package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/defwatch/defwatch/internal/logger"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the harvest on a weekly schedule",
	Long: `Run the harvest automatically once a week at the given weekday
and time, writing a fresh report each run. The process stays in the
foreground until interrupted.

For CI or cron environments, prefer invoking "defwatch run" from the
external scheduler instead.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	addRunFlags(scheduleCmd)

	flags := scheduleCmd.Flags()
	flags.String("weekday", "monday", "weekday to run on")
	flags.String("at", "09:00", "time of day to run at (HH:MM, local time)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg, opts, err := loadRunConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	weekdayStr, _ := cmd.Flags().GetString("weekday")
	atStr, _ := cmd.Flags().GetString("at")

	weekday, err := parseWeekday(weekdayStr)
	if err != nil {
		logError("%v", err)
		return err
	}
	hour, minute, err := parseClock(atStr)
	if err != nil {
		logError("%v", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logInfo("Scheduler started. Will run every %s at %02d:%02d", weekdayStr, hour, minute)

	for {
		next := nextRun(time.Now(), weekday, hour, minute)
		logger.Info("next scheduled run", "at", next.Format(time.RFC1123))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logInfo("Scheduler stopped")
			return nil
		case <-timer.C:
		}

		// A failed run is logged and the schedule continues; only the
		// operator stopping the process ends the loop.
		if err := executeRun(ctx, cfg, opts); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	}
}

// nextRun returns the next occurrence of weekday at hour:minute strictly
// after now.
func nextRun(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, daysAhead)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

func parseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return hour, minute, nil
}
