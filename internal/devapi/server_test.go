package devapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"

	"santaos/internal/api"
	"santaos/internal/devapi"
	"santaos/internal/domain"
	"santaos/internal/syncstore"
)

func newAPI(t *testing.T, quiet bool) *api.HTTP {
	t.Helper()
	srv := devapi.New(nil)
	srv.Seed()
	srv.QuietWrites = quiet
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.NewHTTP(ts.URL, ts.Client())
}

// signIn returns a transport carrying the token of a fresh login.
func signIn(t *testing.T, base *api.HTTP, name string, role domain.Role) (*api.HTTP, domain.User) {
	t.Helper()
	u, err := base.Login(context.Background(), name, role)
	if err != nil {
		t.Fatalf("login %s: %v", name, err)
	}
	c := *base
	c.Token = func() string { return u.Token }
	return &c, u
}

func startStore[T domain.Resource](t *testing.T, rc domain.ResourceClient[T]) *syncstore.Store[T] {
	t.Helper()
	s := syncstore.New[T](rc, syncstore.Options{Clock: clockwork.NewFakeClock()})
	h := s.Start(0)
	t.Cleanup(h.Stop)
	s.RefreshNow(context.Background())
	if err := s.State().LastError; err != nil {
		t.Fatalf("initial fetch: %v", err)
	}
	return s
}

func TestLogin_Validation(t *testing.T) {
	c := newAPI(t, false)
	ctx := context.Background()

	if _, err := c.Login(ctx, "", domain.RoleAdmin); domain.Reason(err) != "name is required" {
		t.Fatalf("empty name: %v", err)
	}
	var se *domain.ServerError
	if _, err := c.Login(ctx, "Bob", domain.Role("reindeer")); !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Fatalf("bad role: %v", err)
	}
	_, u := signIn(t, c, "Jingle", domain.RoleWorker)
	if u.ID != "elf-1" {
		t.Fatalf("worker login should map onto the roster, got %q", u.ID)
	}
}

func TestRequiresToken(t *testing.T) {
	c := newAPI(t, false)
	_, err := api.NewResource[domain.Task](c, domain.KindTasks).List(context.Background())
	var se *domain.ServerError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized || domain.Reason(err) != "sign in required" {
		t.Fatalf("want 401, got %v", err)
	}
}

func TestParentSeesOwnWishlists(t *testing.T) {
	c := newAPI(t, false)
	ctx := context.Background()

	staff, _ := signIn(t, c, "Holly", domain.RoleStaff)
	all, err := api.NewResource[domain.Wishlist](staff, domain.KindWishlists).List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("staff list: %d %v", len(all), err)
	}

	parent, pu := signIn(t, c, "Grace", domain.RoleParent)
	s := startStore[domain.Wishlist](t, api.NewResource[domain.Wishlist](parent, domain.KindWishlists))
	if n := len(s.State().Items); n != 0 {
		t.Fatalf("new parent sees %d wishlists", n)
	}

	created, err := s.Submit(ctx, "", domain.OpCreate, domain.NewWishlist{
		ChildName: "Alan", Items: []domain.WishlistItem{{Name: "Abacus", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ParentID != pu.ID || created.Status != domain.WishlistPending {
		t.Fatalf("server defaults not applied: %+v", created)
	}
	if st := s.State(); len(st.Items) != 1 || st.Items[0].ID != created.ID {
		t.Fatalf("snapshot after create: %+v", st.Items)
	}

	if _, err := s.Submit(ctx, "wl-1", domain.OpDelete, nil); domain.Reason(err) != "wishlists wl-1 not found" {
		t.Fatalf("deleting another parent's wishlist: %v", err)
	}
	if _, err := s.Submit(ctx, created.ID, domain.OpUpdateStatus, domain.StatusChange{Status: "approved"}); err == nil {
		t.Fatal("parent approved a wishlist")
	}
}

func TestTaskLifecycle(t *testing.T) {
	c := newAPI(t, false)
	ctx := context.Background()
	staff, _ := signIn(t, c, "Holly", domain.RoleStaff)
	s := startStore[domain.Task](t, api.NewResource[domain.Task](staff, domain.KindTasks))

	task, err := s.Submit(ctx, "", domain.OpCreate, domain.NewTask{Title: "Paint sled", Quantity: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Submit(ctx, task.ID, domain.OpAssign, domain.Assignment{AssignedTo: "elf-2"}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, err := s.Submit(ctx, task.ID, domain.OpUpdateStatus, domain.StatusChange{Status: "in_progress"})
	if err != nil || got.Status != domain.TaskInProgress || got.AssignedTo != "elf-2" {
		t.Fatalf("update-status: %+v %v", got, err)
	}

	s.RefreshNow(ctx)
	cur, ok := s.State().Find(task.ID)
	if !ok || cur.Status != domain.TaskInProgress || cur.AssignedTo != "elf-2" || cur.Quantity != 3 {
		t.Fatalf("server truth after poll: %+v", cur)
	}

	if _, err := s.Submit(ctx, task.ID, domain.OpDelete, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.State().Find(task.ID); ok {
		t.Fatal("deleted task still in snapshot")
	}
	s.RefreshNow(ctx)
	if len(s.State().Items) != 2 {
		t.Fatalf("want the two seeded tasks, got %d", len(s.State().Items))
	}
}

func TestTaskRules(t *testing.T) {
	c := newAPI(t, false)
	ctx := context.Background()
	staff, _ := signIn(t, c, "Holly", domain.RoleStaff)
	s := startStore[domain.Task](t, api.NewResource[domain.Task](staff, domain.KindTasks))
	before := len(s.State().Items)

	cases := []struct {
		name   string
		id     string
		op     domain.Operation
		body   any
		reason string
	}{
		{"missing title", "", domain.OpCreate, domain.NewTask{Quantity: 1}, "title is required"},
		{"unknown worker", "task-2", domain.OpAssign, domain.Assignment{AssignedTo: "grinch"}, `unknown worker "grinch"`},
		{"unknown status", "task-2", domain.OpUpdateStatus, domain.StatusChange{Status: "lost"}, `invalid tasks record: task-2 has unknown status "lost"`},
		{"missing task", "task-9", domain.OpUpdateStatus, domain.StatusChange{Status: "completed"}, "tasks task-9 not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Submit(ctx, tc.id, tc.op, tc.body)
			if got := domain.Reason(err); got != tc.reason {
				t.Fatalf("reason = %q, want %q", got, tc.reason)
			}
		})
	}
	if len(s.State().Items) != before {
		t.Fatal("rejected mutations changed the snapshot")
	}
}

func TestWorkerView(t *testing.T) {
	c := newAPI(t, false)
	ctx := context.Background()
	worker, u := signIn(t, c, "Jingle", domain.RoleWorker)

	s := startStore[domain.Task](t, api.NewWorkerTasks(worker, u.ID))
	st := s.State()
	if len(st.Items) != 1 || st.Items[0].ID != "task-1" {
		t.Fatalf("worker tasks: %+v", st.Items)
	}
	if _, err := s.Submit(ctx, "task-1", domain.OpUpdateStatus, domain.StatusChange{Status: "completed"}); err != nil {
		t.Fatalf("complete own task: %v", err)
	}
	if cur, _ := s.State().Find("task-1"); cur.Status != domain.TaskCompleted {
		t.Fatalf("status not patched: %+v", cur)
	}

	var se *domain.ServerError
	if _, err := s.Submit(ctx, "task-2", domain.OpUpdateStatus, domain.StatusChange{Status: "completed"}); !errors.As(err, &se) || se.Status != http.StatusForbidden {
		t.Fatalf("worker updated a task that is not theirs: %v", err)
	}
	other := api.NewWorkerTasks(worker, "elf-2")
	if _, err := other.List(ctx); !errors.As(err, &se) || se.Status != http.StatusForbidden {
		t.Fatalf("worker listed someone else's tasks: %v", err)
	}
}

func TestQuietWrites_MergedLocally(t *testing.T) {
	c := newAPI(t, true)
	ctx := context.Background()
	staff, _ := signIn(t, c, "Holly", domain.RoleStaff)
	s := startStore[domain.Task](t, api.NewResource[domain.Task](staff, domain.KindTasks))

	got, err := s.Submit(ctx, "task-2", domain.OpAssign, domain.Assignment{AssignedTo: "elf-2"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got.AssignedTo != "elf-2" || got.Title != "Stitch kites" {
		t.Fatalf("merged result %+v", got)
	}

	if _, err := s.Submit(ctx, "", domain.OpCreate, domain.NewTask{Title: "Wrap presents"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	st := s.State()
	if len(st.Items) != 3 || st.Items[2].Title != "Wrap presents" {
		t.Fatalf("bodiless create not reconciled: %+v", st.Items)
	}
}
