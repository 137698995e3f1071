package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/store"
)

func newAddCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "add [name] [target-minutes]",
		Short: "Add an activity with a daily target",
		Long:  "Add an activity with a daily target in minutes. Without a target the configured default is used; without any argument a form asks for both.",
		Example: `  timetrack add Reading 45
  timetrack add "Side project"`,
		Args: cobra.MaximumNArgs(2),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			target := e.cfg.DefaultTargetMinutes
			var name string

			switch len(args) {
			case 0:
				if !r.opts.Interactive() {
					return errors.New("missing activity name; usage: timetrack add <name> [target-minutes]")
				}
				var err error
				if name, target, err = promptActivity(target); err != nil {
					return err
				}
			case 2:
				m, err := parseMinutes(args[1])
				if err != nil {
					return err
				}
				target = m
				name = args[0]
			default:
				name = args[0]
			}

			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("activity name is empty")
			}
			id := e.store.AddActivity(name, target)
			printSuccess(cmd.OutOrStdout(), "Added %s %s with a daily target of %s", id, name, formatMinutes(target))
			return nil
		}),
	}
}

func promptActivity(defaultTarget uint) (string, uint, error) {
	var name string
	target := strconv.FormatUint(uint64(defaultTarget), 10)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily target (minutes)").
				Value(&target).
				Validate(func(s string) error {
					_, err := parseMinutes(s)
					return err
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", 0, fmt.Errorf("read activity: %w", err)
	}
	m, err := parseMinutes(target)
	if err != nil {
		return "", 0, err
	}
	return name, m, nil
}

func newListCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities and today's progress",
		Args:    cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			printActivities(cmd.OutOrStdout(), e.store)
			return nil
		}),
	}
}

func newDeleteCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an activity",
		Long:    "Delete an activity. A running session on it is ended first and its time kept in the history; a running pomodoro blocks the deletion.",
		Args:    cobra.ExactArgs(1),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, ok := e.store.Activity(id)
			if !ok {
				return store.ErrInvalidID
			}
			if err := e.store.Delete(id); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted %s %s", id, a.Name)
			return nil
		}),
	}
}

func newStartCmd(r *runner) *cobra.Command {
	var pomo uint

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start timing an activity",
		Args:  cobra.ExactArgs(1),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if pomo > 0 {
				err = e.store.StartActivityPomo(id, &pomo)
			} else {
				err = e.store.StartActivity(id)
			}
			if err != nil {
				return err
			}
			a, _ := e.store.Activity(id)
			if pomo > 0 {
				printSuccess(cmd.OutOrStdout(), "Started a %s pomodoro on %s", formatMinutes(pomo), a.Name)
				return nil
			}
			printSuccess(cmd.OutOrStdout(), "Started %s", a.Name)
			return nil
		}),
	}

	cmd.Flags().UintVar(&pomo, "pomo", 0, "Run the session as a pomodoro of this many minutes")
	return cmd
}

func newEndCmd(r *runner) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the running session and credit its minutes",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			a, ok := e.store.CurrentActivity()
			if !ok {
				return store.ErrNoCurrentActivity
			}
			minutes, _ := e.store.CurrentMinutes()
			if err := e.store.EndActivity(force); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Ended %s after %s", a.Name, formatMinutes(minutes))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "End a pomodoro before its time is up")
	return cmd
}

// timeCmd builds the "<verb> <id> <minutes>" commands.
func timeCmd(r *runner, use, short string, apply func(s *store.Store, id store.ActivityID, m uint) error, done func(a store.Activity, m uint) string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <minutes>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := parseMinutes(args[1])
			if err != nil {
				return err
			}
			if err := apply(e.store, id, m); err != nil {
				return err
			}
			a, _ := e.store.Activity(id)
			printSuccess(cmd.OutOrStdout(), "%s", done(a, m))
			return nil
		}),
	}
}

func newRegisterCmd(r *runner) *cobra.Command {
	return timeCmd(r, "register", "Add minutes to an activity",
		(*store.Store).AddTime,
		func(a store.Activity, m uint) string {
			return fmt.Sprintf("Registered %s on %s (%s of %s)", formatMinutes(m), a.Name, formatMinutes(a.AchievedMinutes), formatMinutes(a.TargetMinutes))
		})
}

func newOverwriteCmd(r *runner) *cobra.Command {
	return timeCmd(r, "overwrite", "Set the minutes achieved today",
		(*store.Store).OverwriteTime,
		func(a store.Activity, m uint) string {
			return fmt.Sprintf("%s is now at %s of %s", a.Name, formatMinutes(m), formatMinutes(a.TargetMinutes))
		})
}

func newChangeTargetCmd(r *runner) *cobra.Command {
	return timeCmd(r, "change-target", "Change the daily target of an activity",
		(*store.Store).ChangeTarget,
		func(a store.Activity, m uint) string {
			return fmt.Sprintf("%s now targets %s a day", a.Name, formatMinutes(m))
		})
}

func newRecommendCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Show what to work on next",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			out := cmd.OutOrStdout()
			rec := e.store.Recommend()
			switch rec.Kind {
			case store.Recommended:
				printSuccess(out, "Work on %s %s: %s left", rec.Activity.ID, rec.Activity.Name, formatMinutes(rec.Activity.Remaining()))
			case store.Ongoing:
				left := rec.Activity.TargetMinutes - e.store.AchievedWithCurrent(rec.Activity)
				printSuccess(out, "Keep going on %s: %s left", rec.Activity.Name, formatMinutes(left))
			case store.OngoingCompleted:
				printSuccess(out, "%s reached its target; end it and pick something else", rec.Activity.Name)
			case store.NoMoreTasks:
				return errNothingLeft
			}
			return nil
		}),
	}
}

func parseID(s string) (store.ActivityID, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid activity id %q", s)
	}
	return store.ActivityID(n), nil
}

func parseMinutes(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid number of minutes %q", s)
	}
	return uint(n), nil
}

// parsePosition turns a 1-based position as printed by the list commands
// into an index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q, positions start at 1", s)
	}
	return n - 1, nil
}
