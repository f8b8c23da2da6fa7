package devapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"

	"santaos/internal/domain"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// Server holds all API state in memory.
type Server struct {
	// QuietWrites makes successful mutations answer 204 with no body.
	QuietWrites bool

	log *log.Logger
	now func() time.Time

	mu    sync.RWMutex
	users map[string]domain.User // by token

	wishlists  *collection[domain.Wishlist]
	tasks      *collection[domain.Task]
	deliveries *collection[domain.Delivery]
	workers    *collection[domain.Worker]
}

// New returns an empty server. A nil logger discards the access log.
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		log:        logger,
		now:        func() time.Time { return time.Now().UTC() },
		users:      make(map[string]domain.User),
		wishlists:  newCollection[domain.Wishlist](domain.KindWishlists),
		tasks:      newCollection[domain.Task](domain.KindTasks),
		deliveries: newCollection[domain.Delivery](domain.KindDeliveries),
		workers:    newCollection[domain.Worker](domain.KindWorkers),
	}

	s.wishlists.newItem = func(id string, u domain.User, now time.Time) domain.Wishlist {
		return domain.Wishlist{ID: id, Status: domain.WishlistPending, ParentID: u.ID, CreatedAt: now}
	}
	s.wishlists.check = func(w domain.Wishlist) error {
		if strings.TrimSpace(w.ChildName) == "" {
			return fmt.Errorf("child_name is required")
		}
		if len(w.Items) == 0 {
			return fmt.Errorf("a wishlist needs at least one item")
		}
		return nil
	}
	s.wishlists.visible = func(u domain.User, w domain.Wishlist) bool {
		return u.Role != domain.RoleParent || w.ParentID == u.ID
	}

	s.tasks.newItem = func(id string, _ domain.User, now time.Time) domain.Task {
		return domain.Task{ID: id, Quantity: 1, Status: domain.TaskPending, CreatedAt: now, UpdatedAt: now}
	}
	s.tasks.check = func(t domain.Task) error {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("title is required")
		}
		if t.AssignedTo != "" {
			if _, ok := s.workers.get(t.AssignedTo); !ok {
				return fmt.Errorf("unknown worker %q", t.AssignedTo)
			}
		}
		return nil
	}
	s.tasks.touch = func(t domain.Task, now time.Time) domain.Task { t.UpdatedAt = now; return t }

	s.deliveries.newItem = func(id string, _ domain.User, now time.Time) domain.Delivery {
		return domain.Delivery{ID: id, Status: domain.DeliveryPending, UpdatedAt: now}
	}
	s.deliveries.check = func(d domain.Delivery) error {
		if strings.TrimSpace(d.Recipient) == "" || strings.TrimSpace(d.Address) == "" {
			return fmt.Errorf("recipient and address are required")
		}
		return nil
	}
	s.deliveries.touch = func(d domain.Delivery, now time.Time) domain.Delivery { d.UpdatedAt = now; return d }
	return s
}

// Handler returns the HTTP API wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mount(s, mux, s.wishlists, domain.OpCreate, domain.OpUpdate, domain.OpUpdateStatus, domain.OpDelete)
	mount(s, mux, s.tasks, domain.OpCreate, domain.OpUpdate, domain.OpUpdateStatus, domain.OpAssign, domain.OpDelete)
	mount(s, mux, s.deliveries, domain.OpCreate, domain.OpUpdate, domain.OpUpdateStatus)
	mount(s, mux, s.workers)
	mux.HandleFunc("GET /workers/{id}/tasks", s.authed(s.handleWorkerTasks))
	return s.accessLog(mux)
}

func (s *Server) newID() string { return xid.New().String() }

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u := domain.User{ID: "u-" + s.newID(), Name: name, Role: role, Token: xid.New().String()}
	if role == domain.RoleWorker {
		u.ID = s.workerFor(name).ID
	}
	s.mu.Lock()
	s.users[u.Token] = u
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

// workerFor finds the roster entry named name, enrolling a new one if needed.
func (s *Server) workerFor(name string) domain.Worker {
	for _, wk := range s.workers.list(domain.User{}, nil) {
		if strings.EqualFold(wk.Name, name) {
			return wk
		}
	}
	wk := domain.Worker{ID: "elf-" + s.newID(), Name: name, Active: true}
	s.workers.put(wk)
	return wk
}

func (s *Server) handleWorkerTasks(w http.ResponseWriter, r *http.Request, u domain.User) {
	id := r.PathValue("id")
	if u.Role == domain.RoleWorker && u.ID != id {
		writeError(w, http.StatusForbidden, "workers may only list their own tasks")
		return
	}
	if _, ok := s.workers.get(id); !ok {
		writeError(w, http.StatusNotFound, "worker "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tasks.list(u, func(t domain.Task) bool { return t.AssignedTo == id }))
}

type authedFunc func(http.ResponseWriter, *http.Request, domain.User)

// authed resolves the bearer token to a user.
func (s *Server) authed(next authedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.RLock()
		u, known := s.users[tok]
		s.mu.RUnlock()
		if !ok || !known {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		next(w, r, u)
	}
}

type mutationFunc func(http.ResponseWriter, *http.Request, domain.User, map[string]json.RawMessage)

// mutation checks the caller's role and decodes a JSON object body.
func (s *Server) mutation(kind domain.Kind, op domain.Operation, next mutationFunc) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		allowed := u.CanMutate(kind, op)
		if allowed && u.Role == domain.RoleWorker {
			allowed = s.ownsTask(u, r.PathValue("id"))
		}
		if !allowed {
			writeError(w, http.StatusForbidden, fmt.Sprintf("%s may not %s %s", u.Role, op, kind))
			return
		}
		body := map[string]json.RawMessage{}
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		next(w, r, u, body)
	})
}

// ownsTask reports whether task id is assigned to u.
func (s *Server) ownsTask(u domain.User, id string) bool {
	t, ok := s.tasks.get(id)
	return ok && t.AssignedTo == u.ID
}

// written answers a successful mutation.
func (s *Server) written(w http.ResponseWriter, status int, v any) {
	if s.QuietWrites {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.log.Printf("%s %s %s %d %dB %s rid=%s", r.Method, r.URL.Path, r.RemoteAddr,
			rec.status, rec.bytes, time.Since(start).Round(time.Microsecond), r.Header.Get("X-Request-ID"))
	})
}
