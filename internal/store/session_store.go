package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"santaos/internal/domain"
)

const (
	sessionFile = "session.json.enc"
	profileFile = "profile.json"
)

// SessionFileStore persists the signed-in user under dir.
type SessionFileStore struct {
	dir string
	kdf kdfParams
	now func() time.Time
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir, kdf: defaultKDF(), now: time.Now}
}

// SaveUser seals user with passphrase and records its profile.
func (s *SessionFileStore) SaveUser(passphrase string, user domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	defer wipe(raw)
	sealed, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	if err := writeFile(filepath.Join(s.dir, sessionFile), sealed, 0o600); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.dir, profileFile), domain.Profile{
		UserID:     user.ID,
		Name:       user.Name,
		Role:       user.Role,
		SignedInAt: s.now().UTC(),
	}, 0o600)
}

// LoadUser opens the sealed user. ok is false when nobody is signed in.
func (s *SessionFileStore) LoadUser(passphrase string) (domain.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, sessionFile))
	if err != nil || b == nil {
		return domain.User{}, false, err
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return domain.User{}, false, err
	}
	defer wipe(pt)
	var u domain.User
	if err := json.Unmarshal(pt, &u); err != nil {
		return domain.User{}, false, fmt.Errorf("decode session: %w", err)
	}
	if err := u.Validate(); err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// Profile returns the recorded profile. ok is false when nobody is signed in.
func (s *SessionFileStore) Profile() (domain.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p domain.Profile
	if err := readJSON(filepath.Join(s.dir, profileFile), &p); err != nil {
		return domain.Profile{}, false, err
	}
	return p, p.UserID != "", nil
}

// ClearUser removes the session and profile. Clearing twice is not an error.
func (s *SessionFileStore) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, name := range []string{sessionFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
