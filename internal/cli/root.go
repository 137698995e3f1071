// Package cli is the cobra command tree. With no subcommand it starts the
// full-screen interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/tui"
)

// Options overrides process-level collaborators, mostly for tests.
type Options struct {
	// Now is the clock used by the store. Defaults to time.Now.
	Now func() time.Time
	// Interactive reports whether stdin is a terminal.
	Interactive func() bool
	// CountdownTick is how often the pomo countdown redraws. Defaults to 1s.
	CountdownTick time.Duration
}

type runner struct {
	opts       Options
	configPath string
}

func Execute() error {
	return NewRootCmd(Options{}).Execute()
}

// NewRootCmd builds the "timetrack" command with every subcommand.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Interactive == nil {
		opts.Interactive = func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		}
	}
	if opts.CountdownTick <= 0 {
		opts.CountdownTick = time.Second
	}
	r := &runner{opts: opts}

	root := &cobra.Command{
		Use:           "timetrack",
		Short:         "Daily activity targets, pomodoros and a bucketed todo list",
		Long:          "timetrack tracks time spent on activities against daily targets, runs pomodoro sessions and keeps a todo list grouped into buckets.\n\nRun without a subcommand to open the interactive interface.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          r.withEnv(r.runTUI),
	}
	root.PersistentFlags().StringVar(&r.configPath, "config", "", "config file (default ~/.timetrack/config.toml)")

	root.AddCommand(
		newAddCmd(r),
		newListCmd(r),
		newDeleteCmd(r),
		newStartCmd(r),
		newEndCmd(r),
		newRegisterCmd(r),
		newOverwriteCmd(r),
		newChangeTargetCmd(r),
		newRecommendCmd(r),
		newPomoCmd(r),
		newTodoCmd(r),
		newBucketCmd(r),
		newHistoryCmd(r),
		newExportCmd(r),
		newConfigCmd(r),
	)

	return root
}

func (r *runner) runTUI(cmd *cobra.Command, _ []string, e *env) error {
	if !r.opts.Interactive() {
		return errors.New("the interactive interface needs a terminal; see timetrack --help for subcommands")
	}

	exportDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	app := tui.NewApp(e.store, tui.Options{
		Saver:                e.file,
		History:              e.history,
		Notifier:             e.notifier,
		Logger:               e.logger,
		DefaultTargetMinutes: e.cfg.DefaultTargetMinutes,
		PomoMaxMinutes:       e.cfg.PomoMaxMinutes,
		TickInterval:         e.cfg.TickInterval,
		ExportDir:            exportDir,
	})

	e.logger.Info("starting interface", "state", e.file.Path())
	final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	if app, ok := final.(tui.App); ok && app.Err() != nil {
		return fmt.Errorf("save state: %w", app.Err())
	}
	return nil
}
