package app_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"santaos/internal/app"
	"santaos/internal/devapi"
	"santaos/internal/domain"
)

func newWire(t *testing.T) *app.Wire {
	t.Helper()
	srv := devapi.New(nil)
	srv.Seed()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.APIURL = ts.URL
	cfg.HTTP = ts.Client()
	w, err := app.NewWire(cfg)
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	return w
}

func TestWire_SignInResumeSignOut(t *testing.T) {
	w := newWire(t)
	ctx := context.Background()

	if _, ok := w.User(); ok {
		t.Fatal("fresh wire holds a user")
	}
	u, err := w.SignIn(ctx, "Holly", domain.RoleStaff, "pass")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	// A later invocation resumes from disk.
	w2, err := app.NewWire(w.Config)
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	got, err := w2.Resume("pass")
	if err != nil || got != u {
		t.Fatalf("Resume: %+v %v", got, err)
	}
	if _, err := w2.Resume("nope"); err == nil {
		t.Fatal("wrong passphrase resumed")
	}

	h := w2.Tasks.Start(0)
	defer h.Stop()
	w2.Tasks.RefreshNow(ctx)
	if st := w2.Tasks.State(); st.LastError != nil || len(st.Items) != 2 {
		t.Fatalf("authenticated fetch: %+v", st)
	}

	if err := w2.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := w2.Resume("pass"); !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("want ErrNotSignedIn, got %v", err)
	}
}

func TestWire_UnauthenticatedFetchFails(t *testing.T) {
	w := newWire(t)
	h := w.Deliveries.Start(0)
	defer h.Stop()
	w.Deliveries.RefreshNow(context.Background())
	if got := w.Deliveries.State().Reason(); got != "sign in required" {
		t.Fatalf("reason = %q", got)
	}
}

func TestWire_SharesStores(t *testing.T) {
	w := newWire(t)
	if w.WorkerTasks("elf-1") != w.WorkerTasks("elf-1") {
		t.Fatal("worker task store not shared")
	}
	if w.WorkerTasks("elf-1") == w.WorkerTasks("elf-2") {
		t.Fatal("distinct workers share a store")
	}
	if w.Tasks.Kind() != domain.KindTasks || w.WorkerTasks("elf-1").Kind() != domain.KindWorkerTasks {
		t.Fatal("stores bound to the wrong resource")
	}
}

func TestNewWire_RejectsBadConfig(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Interval = 0
	if _, err := app.NewWire(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

type stubAuth struct{ calls int }

func (a *stubAuth) Login(_ context.Context, name string, role domain.Role) (domain.User, error) {
	a.calls++
	return domain.User{ID: "u-" + name, Name: name, Role: role, Token: "t-" + name}, nil
}

// memSession keeps the session in memory; the passphrase must match.
type memSession struct {
	pass string
	user *domain.User
	at   time.Time
}

func (m *memSession) SaveUser(passphrase string, u domain.User) error {
	m.pass, m.user, m.at = passphrase, &u, time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	return nil
}

func (m *memSession) LoadUser(passphrase string) (domain.User, bool, error) {
	if m.user == nil {
		return domain.User{}, false, nil
	}
	if passphrase != m.pass {
		return domain.User{}, false, errors.New("wrong passphrase")
	}
	return *m.user, true, nil
}

func (m *memSession) Profile() (domain.Profile, bool, error) {
	if m.user == nil {
		return domain.Profile{}, false, nil
	}
	return domain.Profile{UserID: m.user.ID, Name: m.user.Name, Role: m.user.Role, SignedInAt: m.at}, true, nil
}

func (m *memSession) ClearUser() error {
	m.user = nil
	return nil
}

func TestWire_UsesInjectedSessionAndAuth(t *testing.T) {
	w := newWire(t)
	auth, sess := &stubAuth{}, &memSession{}
	w.Auth, w.Session = auth, sess

	u, err := w.SignIn(context.Background(), "Pepper", domain.RoleAdmin, "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if auth.calls != 1 || sess.user == nil || sess.user.Token != "t-Pepper" {
		t.Fatalf("injected collaborators not used: calls=%d session=%+v", auth.calls, sess.user)
	}
	if held, ok := w.User(); !ok || held != u {
		t.Fatalf("held user %+v", held)
	}

	p, ok, err := w.Session.Profile()
	if err != nil || !ok || p.UserID != "u-Pepper" || p.Role != domain.RoleAdmin {
		t.Fatalf("profile %+v ok=%v err=%v", p, ok, err)
	}
	if err := w.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := w.Resume("pw"); !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("want ErrNotSignedIn, got %v", err)
	}
}
