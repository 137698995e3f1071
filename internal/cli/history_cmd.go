package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/export"
	"github.com/sadopc/timetrack/internal/history"
)

var errHistoryDisabled = errors.New("session history is disabled (history.enabled = false)")

func newHistoryCmd(r *runner) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show minutes per activity and day",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			if e.history == nil {
				return errHistoryDisabled
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}

			now := r.opts.Now().UTC()
			to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
			from := to.AddDate(0, 0, -days)

			summaries, err := e.history.DailySummary(from, to)
			if err != nil {
				return err
			}
			pomo, err := e.history.PomodoroStats(from, to)
			if err != nil {
				return err
			}
			today, err := e.history.TodayTotal()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("Last %d days", days))
			printSummaries(out, summaries)
			_, _ = faintColor.Fprintf(out, "Pomodoros: %d completed, %d cut short, %s total\n",
				pomo.Completed, pomo.Interrupted, formatMinutes(uint(pomo.TotalMinutes)))
			_, _ = faintColor.Fprintf(out, "Logged today: %s\n", formatMinutes(uint(today)))
			return nil
		}),
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to show, today included")
	return cmd
}

func newExportCmd(r *runner) *cobra.Command {
	var (
		format string
		out    string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the session history as CSV or JSON",
		Example: `  timetrack export --format csv --out sessions.csv
  timetrack export --format json --days 30`,
		Args: cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			if e.history == nil {
				return errHistoryDisabled
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var filter history.Filter
			if days > 0 {
				from := r.opts.Now().UTC().AddDate(0, 0, -days)
				filter.From = &from
			}
			sessions, err := e.history.List(filter)
			if err != nil {
				return err
			}

			if out == "" {
				return export.Write(cmd.OutOrStdout(), f, sessions)
			}
			if err := export.ToFile(out, f, sessions); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Exported %d sessions to %s", len(sessions), out)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "Output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().IntVar(&days, "days", 0, "Only sessions from the last N days (0 = all)")
	return cmd
}
