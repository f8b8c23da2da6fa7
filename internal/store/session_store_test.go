package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"santaos/internal/domain"
)

// newTestStore uses cheap scrypt parameters so tests stay fast.
func newTestStore(t *testing.T) *SessionFileStore {
	t.Helper()
	s := NewSessionFileStore(filepath.Join(t.TempDir(), "home"))
	s.kdf = kdfParams{N: 1 << 10, R: 8, P: 1}
	s.now = func() time.Time { return time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

var elf = domain.User{ID: "u1", Name: "Jingle", Role: domain.RoleWorker, Token: "tok-123"}

func TestSession_SaveLoad_OK(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveUser("pass", elf); err != nil {
		t.Fatalf("save user: %v", err)
	}
	got, ok, err := s.LoadUser("pass")
	if err != nil || !ok {
		t.Fatalf("load user: ok=%v err=%v", ok, err)
	}
	if got != elf {
		t.Fatalf("mismatch after load: %+v", got)
	}

	p, ok, err := s.Profile()
	if err != nil || !ok {
		t.Fatalf("profile: ok=%v err=%v", ok, err)
	}
	if p.Name != "Jingle" || p.Role != domain.RoleWorker || !p.SignedInAt.Equal(s.now()) {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestSession_TokenNotStoredInPlaintext(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveUser("pass", elf); err != nil {
		t.Fatalf("save user: %v", err)
	}
	for _, name := range []string{sessionFile, profileFile} {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if bytes.Contains(b, []byte(elf.Token)) {
			t.Fatalf("%s leaks the token", name)
		}
	}
}

func TestSession_WrongPassphrase_Fails(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveUser("correct", elf); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if _, _, err := s.LoadUser("wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestSession_Missing(t *testing.T) {
	s := newTestStore(t)
	if _, ok, err := s.LoadUser("pass"); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.Profile(); ok || err != nil {
		t.Fatalf("empty profile: ok=%v err=%v", ok, err)
	}
}

func TestSession_ClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveUser("pass", elf); err != nil {
		t.Fatalf("save user: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.ClearUser(); err != nil {
			t.Fatalf("clear #%d: %v", i+1, err)
		}
	}
	if _, ok, _ := s.LoadUser("pass"); ok {
		t.Fatal("session survived clear")
	}
}

func TestSession_RejectsInvalidUser(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveUser("pass", domain.User{ID: "u1", Role: domain.RoleAdmin}); err == nil {
		t.Fatal("user without token accepted")
	}
}

func TestEnvelope_Tampered(t *testing.T) {
	kp := kdfParams{N: 1 << 10, R: 8, P: 1}
	b, err := seal("pass", []byte(`{"id":"u1"}`), kp)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	pt, err := open("pass", b)
	if err != nil || string(pt) != `{"id":"u1"}` {
		t.Fatalf("open: %q %v", pt, err)
	}
	if _, err := open("", b); err == nil {
		t.Fatal("empty passphrase accepted")
	}
	if _, err := open("pass", []byte(`{"v":9}`)); err == nil {
		t.Fatal("future format accepted")
	}
}
