package types

import "time"

// TaskStatus tracks a production task on the workshop floor.
type TaskStatus string

// Task statuses.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task is a unit of production work derived from a wishlist.
type Task struct {
	ID         string     `json:"id"`
	WishlistID string     `json:"wishlist_id,omitempty"`
	Title      string     `json:"title"`
	Quantity   int        `json:"quantity"`
	AssignedTo string     `json:"assigned_to,omitempty"`
	Status     TaskStatus `json:"status"`
	Priority   int        `json:"priority"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewTask is the create payload for a task.
type NewTask struct {
	WishlistID string `json:"wishlist_id,omitempty"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	Priority   int    `json:"priority"`
}

// ResourceID implements Resource.
func (t Task) ResourceID() string { return t.ID }

// Validate implements Resource.
func (t Task) Validate() error {
	if t.ID == "" {
		return invalid(KindTasks, "missing id")
	}
	if !t.Status.Valid() {
		return invalid(KindTasks, "%s has unknown status %q", t.ID, t.Status)
	}
	if t.Quantity < 0 {
		return invalid(KindTasks, "%s has negative quantity", t.ID)
	}
	return nil
}
