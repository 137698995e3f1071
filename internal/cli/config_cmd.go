package cli

import (
	"errors"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/config"
)

func newConfigCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigInitCmd(r), newConfigShowCmd(r))
	return cmd
}

func newConfigInitCmd(r *runner) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := r.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Write(path, cfg, force); err != nil {
				if errors.Is(err, config.ErrExists) {
					return fmt.Errorf("%w; use --force to replace it", err)
				}
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}

func newConfigShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			file := cfg.File
			if file == "" {
				file = "(none, defaults in use)"
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("config file", file)
			tbl.AddRow("state.path", cfg.StatePath)
			tbl.AddRow("history.enabled", cfg.HistoryEnabled)
			tbl.AddRow("history.path", cfg.HistoryPath)
			tbl.AddRow("log.path", cfg.LogPath)
			tbl.AddRow("log.level", cfg.LogLevel)
			tbl.AddRow("pomodoro.max_minutes", cfg.PomoMaxMinutes)
			tbl.AddRow("pomodoro.default_minutes", cfg.PomoDefaultMinutes)
			tbl.AddRow("track.default_target_minutes", cfg.DefaultTargetMinutes)
			tbl.AddRow("tui.tick_interval", cfg.TickInterval)
			tbl.AddRow("notify.enabled", cfg.NotifyEnabled)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
}
