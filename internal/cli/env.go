package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sadopc/timetrack/internal/config"
	"github.com/sadopc/timetrack/internal/history"
	"github.com/sadopc/timetrack/internal/logging"
	"github.com/sadopc/timetrack/internal/notify"
	"github.com/sadopc/timetrack/internal/statefile"
	"github.com/sadopc/timetrack/internal/store"
)

// env holds what a command works on. It is opened once per invocation and
// owns the store until Close.
type env struct {
	cfg      config.Config
	file     *statefile.File
	store    *store.Store
	history  *history.Store // nil when disabled or unavailable
	logger   *slog.Logger
	notifier notify.Notifier

	closers []io.Closer
}

func (r *runner) loadConfig() (config.Config, error) {
	return config.Load(viper.New(), r.configPath)
}

func (r *runner) open() (*env, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, notifier: notify.New(cfg.NotifyEnabled)}

	logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	e.logger = logger
	e.closers = append(e.closers, closer)

	e.file = statefile.New(cfg.StatePath, statefile.WithClock(r.opts.Now))
	st, err := e.file.Load()
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = store.New(st, store.WithClock(r.opts.Now))

	if cfg.HistoryEnabled {
		h, err := history.New(cfg.HistoryPath)
		if err != nil {
			// The session log is auxiliary; tracking keeps working without it.
			logger.Warn("open history", "path", cfg.HistoryPath, "err", err)
		} else {
			h.SetClock(r.opts.Now)
			e.history = h
			e.closers = append(e.closers, h)
		}
	}
	return e, nil
}

// commit forwards finished sessions to the history log and saves the state
// file when the store changed.
func (e *env) commit() error {
	for _, rec := range e.store.TakeFinished() {
		if e.history == nil {
			continue
		}
		if _, err := e.history.Record(rec); err != nil {
			e.logger.Error("record session", "activity", rec.ActivityName, "err", err)
		}
	}
	if !e.store.Dirty() {
		return nil
	}
	if err := e.file.Save(e.store.State()); err != nil {
		return err
	}
	e.store.MarkClean()
	return nil
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// withEnv opens the environment around fn and saves afterwards, on every
// exit path. Domain errors are reported on one line and do not fail the
// command.
func (r *runner) withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := r.open()
		if err != nil {
			return err
		}
		defer e.Close()

		runErr := fn(cmd, args, e)
		if err := e.commit(); err != nil {
			return err
		}
		if isDomainError(runErr) {
			e.logger.Debug("domain error", "cmd", cmd.Name(), "err", runErr)
			printFailure(cmd.ErrOrStderr(), explain(runErr))
			return nil
		}
		if runErr != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), runErr)
		}
		return nil
	}
}
