package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/notify"
	"github.com/sadopc/timetrack/internal/store"
)

func newPomoCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "pomo [minutes]",
		Short: "Run a pomodoro countdown on the recommended activity",
		Long: `Start a pomodoro on the recommended activity and count down in the terminal.
When the time is up the minutes are credited and a notification is sent.
Ctrl+C ends the pomodoro early and keeps the minutes worked so far.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			minutes := e.cfg.PomoDefaultMinutes
			if len(args) == 1 {
				m, err := parseMinutes(args[0])
				if err != nil {
					return err
				}
				if m == 0 {
					return errors.New("a pomodoro needs at least one minute")
				}
				minutes = m
			}

			rec := e.store.Recommend()
			switch rec.Kind {
			case store.NoMoreTasks:
				return errNothingLeft
			case store.Ongoing, store.OngoingCompleted:
				return store.ErrAlreadyOngoing
			}
			if err := e.store.StartActivityPomo(rec.Activity.ID, &minutes); err != nil {
				return err
			}
			// Persist the start so the interface shows the running pomodoro.
			if err := e.commit(); err != nil {
				return err
			}
			e.logger.Info("pomodoro started", "activity", rec.Activity.Name, "minutes", minutes)
			return r.countdown(cmd, e)
		}),
	}
}

// countdown redraws the remaining time until the pomodoro expires or the
// command is interrupted. The signal goroutine only sets the cancel flag; the
// loop reads it once per iteration.
func (r *runner) countdown(cmd *cobra.Command, e *env) error {
	var cancelled atomic.Bool

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sig:
			cancelled.Store(true)
		case <-ctx.Done():
			cancelled.Store(true)
		case <-done:
		}
	}()

	out := cmd.OutOrStdout()
	a, _ := e.store.CurrentActivity()
	total, _ := e.store.PomoMinutes()
	printSuccess(out, "Pomodoro on %s for %s. Ctrl+C ends it early.", a.Name, formatMinutes(total))

	ticker := time.NewTicker(r.opts.CountdownTick)
	defer ticker.Stop()

	for {
		if cancelled.Load() {
			worked, _ := e.store.CurrentMinutes()
			if err := e.store.EndActivity(true); err != nil {
				return err
			}
			e.logger.Info("pomodoro interrupted", "activity", a.Name, "minutes", worked)
			_, _ = fmt.Fprintln(out)
			printFailure(out, fmt.Sprintf("Pomodoro on %s cut short after %s", a.Name, formatMinutes(worked)))
			return nil
		}

		if rec, ok := e.store.CheckPomodoroExpiry(); ok {
			e.logger.Info("pomodoro finished", "activity", rec.ActivityName, "minutes", rec.Minutes)
			_, _ = fmt.Fprintln(out)
			printSuccess(out, "You've worked for %s on %s!", formatMinutes(rec.Minutes), rec.ActivityName)
			title, body := notify.PomodoroFinished(rec.ActivityName, rec.Minutes)
			if err := e.notifier.Notify(ctx, title, body); err != nil {
				e.logger.Warn("send notification", "err", err)
			}
			return nil
		}

		elapsed, _ := e.store.CurrentElapsed()
		left := time.Duration(total)*time.Minute - elapsed
		_, _ = faintColor.Fprintf(out, "\r%s left ", formatClock(left))

		<-ticker.C
	}
}

// formatClock renders d as MM:SS, or H:MM:SS from an hour up.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
