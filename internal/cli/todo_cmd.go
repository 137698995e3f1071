package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/timetrack/internal/store"
)

func newTodoCmd(r *runner) *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
		Long: `Manage the todo list. Todos are addressed by the position shown by
"timetrack todo list", starting at 1, inside the bucket given with --bucket
(default ` + store.DefaultBucket + `).`,
	}
	cmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", "", "Bucket to work on (default "+store.DefaultBucket+")")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List todos, every bucket unless --bucket is set",
			Args:  cobra.NoArgs,
			RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
				out := cmd.OutOrStdout()
				if bucket != "" {
					i, err := resolveBucket(e.store, bucket)
					if err != nil {
						return err
					}
					b, _ := e.store.Bucket(i)
					printBucket(out, b)
					return nil
				}
				for _, b := range e.store.Buckets() {
					printBucket(out, b)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <text>...",
			Short: "Add a todo at the end of the bucket",
			Args:  cobra.MinimumNArgs(1),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				i, err := resolveBucket(e.store, bucket)
				if err != nil {
					return err
				}
				text := strings.TrimSpace(strings.Join(args, " "))
				if text == "" {
					return errors.New("todo text is empty")
				}
				if err := e.store.AddTodo(i, text); err != nil {
					return err
				}
				b, _ := e.store.Bucket(i)
				printSuccess(cmd.OutOrStdout(), "Added %q to %s", text, b.Name)
				return nil
			}),
		},
		&cobra.Command{
			Use:     "delete <position>",
			Aliases: []string{"done"},
			Short:   "Remove a todo",
			Args:    cobra.ExactArgs(1),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				i, err := resolveBucket(e.store, bucket)
				if err != nil {
					return err
				}
				pos, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				item, err := e.store.DeleteTodo(i, pos)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Done: %s", item.Text)
				return nil
			}),
		},
		todoPairCmd(r, &bucket, "swap <first> <second>", "Swap two todos", (*store.Store).SwapTodos, "Swapped todos %d and %d"),
		todoPairCmd(r, &bucket, "move-above <anchor> <position>", "Move a todo directly above another", (*store.Store).MoveTodoAbove, "Moved todo %[2]d above %[1]d"),
		todoPairCmd(r, &bucket, "move-below <anchor> <position>", "Move a todo directly below another", (*store.Store).MoveTodoBelow, "Moved todo %[2]d below %[1]d"),
		&cobra.Command{
			Use:   "move <position> <bucket>",
			Short: "Move a todo to the end of another bucket",
			Args:  cobra.ExactArgs(2),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				src, err := resolveBucket(e.store, bucket)
				if err != nil {
					return err
				}
				pos, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				dst, err := resolveBucket(e.store, args[1])
				if err != nil {
					return err
				}
				todos := e.store.Todos(src)
				if pos >= len(todos) {
					return store.ErrInvalidID
				}
				text := todos[pos].Text
				if err := e.store.MoveTodoBetweenBuckets(src, pos, dst); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Moved %q to %s", text, args[1])
				return nil
			}),
		},
	)

	return cmd
}

// todoPairCmd builds the commands taking two positions in one bucket.
func todoPairCmd(r *runner, bucket *string, use, short string, apply func(s *store.Store, bucket, a, b int) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			i, err := resolveBucket(e.store, *bucket)
			if err != nil {
				return err
			}
			a, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			b, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			if err := apply(e.store, i, a, b); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), done, a+1, b+1)
			return nil
		}),
	}
}

func newBucketCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage todo buckets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List buckets in order",
			Args:  cobra.NoArgs,
			RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
				printBuckets(cmd.OutOrStdout(), e.store.Buckets())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a bucket",
			Args:  cobra.ExactArgs(1),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				name := strings.TrimSpace(args[0])
				if name == "" {
					return errors.New("bucket name is empty")
				}
				if !e.store.CreateBucket(name) {
					printSuccess(cmd.OutOrStdout(), "Bucket %s already exists", name)
					return nil
				}
				printSuccess(cmd.OutOrStdout(), "Created bucket %s", name)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete an empty bucket",
			Args:  cobra.ExactArgs(1),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				i, err := resolveBucket(e.store, args[0])
				if err != nil {
					return err
				}
				if !e.store.DeleteBucket(i) {
					if args[0] == store.DefaultBucket {
						printFailure(cmd.ErrOrStderr(), "The "+store.DefaultBucket+" bucket cannot be deleted.")
					} else {
						printFailure(cmd.ErrOrStderr(), "Only empty buckets can be deleted.")
					}
					return nil
				}
				printSuccess(cmd.OutOrStdout(), "Deleted bucket %s", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "move <name> <position>",
			Short: "Move a bucket to another position",
			Args:  cobra.ExactArgs(2),
			RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
				from, err := resolveBucket(e.store, args[0])
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1])
				if err != nil {
					return err
				}
				if err := e.store.MoveBucket(from, to); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Moved bucket %s to position %d", args[0], to+1)
				return nil
			}),
		},
	)

	return cmd
}

// resolveBucket maps a bucket name to its index. An empty name is the
// default bucket.
func resolveBucket(s *store.Store, name string) (int, error) {
	if name == "" {
		name = store.DefaultBucket
	}
	i := s.BucketIndex(name)
	if i < 0 {
		return 0, store.ErrInvalidBucket
	}
	return i, nil
}
