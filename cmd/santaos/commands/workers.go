package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"santaos/internal/domain"
	"santaos/internal/syncstore"
)

func workersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "workers", Short: "Production roster"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd, appCtx.Workers, renderWorkers)
		},
	})
	return cmd
}

// workerCmd is the task view of a single worker.
func workerCmd() *cobra.Command {
	var workerID string
	cmd := &cobra.Command{Use: "worker", Short: "Your assigned tasks"}
	cmd.PersistentFlags().StringVar(&workerID, "id", "", "worker id (default: the signed-in worker)")

	store := func() (*syncstore.Store[domain.Task], error) {
		u, err := currentUser()
		if err != nil {
			return nil, err
		}
		id := workerID
		if id == "" {
			if u.Role != domain.RoleWorker {
				return nil, fmt.Errorf("--id is required for %s accounts", u.Role)
			}
			id = u.ID
		}
		return appCtx.WorkerTasks(id), nil
	}
	setStatus := func(status domain.TaskStatus) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			return setTaskStatus(cmd, s, args[0], string(status))
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "tasks",
			Short: "List tasks assigned to you",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := store()
				if err != nil {
					return err
				}
				return list(cmd, s, renderTasks)
			},
		},
		&cobra.Command{
			Use:   "start <task-id>",
			Short: "Mark a task in progress",
			Args:  cobra.ExactArgs(1),
			RunE:  setStatus(domain.TaskInProgress),
		},
		&cobra.Command{
			Use:   "done <task-id>",
			Short: "Mark a task completed",
			Args:  cobra.ExactArgs(1),
			RunE:  setStatus(domain.TaskCompleted),
		},
	)
	return cmd
}

func setTaskStatus(cmd *cobra.Command, s *syncstore.Store[domain.Task], id, status string) error {
	st := domain.TaskStatus(status)
	if !st.Valid() {
		return fmt.Errorf("unknown task status %q", status)
	}
	if _, err := submit(cmd, s, id, domain.OpUpdateStatus, domain.StatusChange{Status: status}); err != nil {
		return err
	}
	done(cmd, "Task %s is now %s.", id, st)
	return nil
}
