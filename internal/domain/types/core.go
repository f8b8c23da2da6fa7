package types

import (
	"fmt"
	"time"
)

// Kind names a resource collection on the API, e.g. "tasks".
type Kind string

// Resource collections exposed by the SantaOS API.
const (
	KindWishlists   Kind = "wishlists"
	KindTasks       Kind = "tasks"
	KindDeliveries  Kind = "deliveries"
	KindWorkers     Kind = "workers"
	KindWorkerTasks Kind = "worker-tasks"
)

// String returns the string form of the kind.
func (k Kind) String() string { return string(k) }

// Resource is a record identified by a stable, server-assigned id.
//
// Implementations are plain value types; Validate is applied at the API
// boundary so malformed payloads never reach a snapshot.
type Resource interface {
	ResourceID() string
	Validate() error
}

// Operation is the kind of mutation submitted against a resource.
type Operation string

// Supported mutation kinds.
const (
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpUpdateStatus Operation = "update-status"
	OpAssign       Operation = "assign"
	OpDelete       Operation = "delete"
)

// String returns the string form of the operation.
func (o Operation) String() string { return string(o) }

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	switch o {
	case OpCreate, OpUpdate, OpUpdateStatus, OpAssign, OpDelete:
		return true
	}
	return false
}

// RequiresID reports whether the operation targets an existing resource.
func (o Operation) RequiresID() bool { return o != OpCreate }

// SubPath is the segment appended to /{resource}/{id} for narrow updates.
func (o Operation) SubPath() string {
	switch o {
	case OpUpdateStatus:
		return "status"
	case OpAssign:
		return "assign"
	}
	return ""
}

// StatusChange is the payload of an update-status mutation.
type StatusChange struct {
	Status string `json:"status"`
}

// Assignment is the payload of an assign mutation.
type Assignment struct {
	AssignedTo string `json:"assigned_to"`
}

func invalid(kind Kind, format string, args ...any) error {
	return fmt.Errorf("invalid %s record: %s", kind, fmt.Sprintf(format, args...))
}

// Timestamp formats t for display; the zero time renders as "-".
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 02 15:04")
}
