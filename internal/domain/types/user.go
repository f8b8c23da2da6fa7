package types

import (
	"fmt"
	"time"
)

// Role decides which views a signed-in user may act on.
type Role string

// Known roles.
const (
	RoleParent Role = "parent"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// String returns the string form of the role.
func (r Role) String() string { return string(r) }

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleStaff, RoleAdmin, RoleWorker:
		return true
	}
	return false
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (want parent, staff, admin or worker)", s)
	}
	return r, nil
}

// User is the signed-in user object held by the client.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

// Validate checks the fields the client relies on.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("invalid user: missing id")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid user %s: unknown role %q", u.ID, u.Role)
	}
	if u.Token == "" {
		return fmt.Errorf("invalid user %s: missing token", u.ID)
	}
	return nil
}

// CanMutate reports whether the user's role may submit op against kind.
func (u User) CanMutate(kind Kind, op Operation) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleStaff:
		return kind == KindWishlists && op == OpUpdateStatus ||
			kind == KindTasks ||
			kind == KindWorkerTasks
	case RoleParent:
		return kind == KindWishlists && (op == OpCreate || op == OpDelete)
	case RoleWorker:
		return (kind == KindTasks || kind == KindWorkerTasks) && op == OpUpdateStatus
	}
	return false
}

// Profile is the non-secret record of who is signed in.
type Profile struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	SignedInAt time.Time `json:"signed_in_at"`
}
