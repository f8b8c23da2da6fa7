package interfaces

import (
	"context"

	domaintypes "santaos/internal/domain/types"
)

// SessionStore holds the signed-in user object between invocations.
// Profile is readable without the passphrase and never carries the token.
type SessionStore interface {
	SaveUser(passphrase string, user domaintypes.User) error
	LoadUser(passphrase string) (domaintypes.User, bool, error)
	Profile() (domaintypes.Profile, bool, error)
	ClearUser() error
}

// Authenticator exchanges a name and role for a user object with a token.
type Authenticator interface {
	Login(ctx context.Context, name string, role domaintypes.Role) (domaintypes.User, error)
}
