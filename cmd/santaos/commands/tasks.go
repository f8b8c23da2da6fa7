package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tasks", Short: "Production tasks"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List production tasks",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return list(cmd, appCtx.Tasks, renderTasks)
			},
		},
		taskCreateCmd(),
		&cobra.Command{
			Use:   "assign <id> <worker-id>",
			Short: "Assign a task to a worker",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := submit(cmd, appCtx.Tasks, args[0], domain.OpAssign, domain.Assignment{AssignedTo: args[1]}); err != nil {
					return err
				}
				done(cmd, "Task %s assigned to %s.", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "status <id> <status>",
			Short: "Move a task to pending, in_progress or completed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setTaskStatus(cmd, appCtx.Tasks, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := submit(cmd, appCtx.Tasks, args[0], domain.OpDelete, nil); err != nil {
					return err
				}
				done(cmd, "Task %s deleted.", args[0])
				return nil
			},
		},
	)
	return cmd
}

func taskCreateCmd() *cobra.Command {
	var in domain.NewTask
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a production task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Quantity < 1 {
				return fmt.Errorf("--qty must be at least 1")
			}
			t, err := submit(cmd, appCtx.Tasks, "", domain.OpCreate, in)
			if err != nil {
				return err
			}
			if t.ID == "" {
				done(cmd, "Task %q created.", in.Title)
				return nil
			}
			done(cmd, "Task %s %q created.", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "what to make")
	cmd.Flags().IntVar(&in.Quantity, "qty", 1, "how many")
	cmd.Flags().IntVar(&in.Priority, "priority", 0, "higher runs first")
	cmd.Flags().StringVar(&in.WishlistID, "wishlist", "", "originating wishlist id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
