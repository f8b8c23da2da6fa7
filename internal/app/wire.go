package app

import (
	"context"
	"net/http"
	"sync"

	"santaos/internal/api"
	"santaos/internal/domain"
	"santaos/internal/observability"
	"santaos/internal/store"
	"santaos/internal/syncstore"
)

// Wire bundles the shared stores and clients for the CLI.
type Wire struct {
	Config  Config
	Auth    domain.Authenticator
	Session domain.SessionStore
	Logger  observability.Logger
	Metrics *observability.ExpvarMetricsRecorder

	Wishlists  *syncstore.Store[domain.Wishlist]
	Tasks      *syncstore.Store[domain.Task]
	Deliveries *syncstore.Store[domain.Delivery]
	Workers    *syncstore.Store[domain.Worker]

	rc          *api.HTTP
	mu          sync.Mutex
	user        domain.User
	workerTasks map[string]*syncstore.Store[domain.Task]
	opts        syncstore.Options
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := observability.OrNoop(cfg.Logger)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	w := &Wire{
		Config:      cfg,
		Session:     store.NewSessionFileStore(cfg.Home),
		Logger:      logger,
		Metrics:     observability.NewExpvarMetricsRecorder(""),
		workerTasks: make(map[string]*syncstore.Store[domain.Task]),
	}

	rc := api.NewHTTP(cfg.APIURL, httpClient)
	rc.Timeout = cfg.Timeout
	rc.Logger = logger
	rc.Token = w.token
	w.rc = rc
	w.Auth = rc

	metrics := observability.Fanout{w.Metrics}
	if cfg.Metrics != nil {
		metrics = append(metrics, cfg.Metrics)
	}
	w.opts = syncstore.Options{Clock: cfg.Clock, Logger: logger, Metrics: metrics}

	w.Wishlists = syncstore.New[domain.Wishlist](api.NewResource[domain.Wishlist](rc, domain.KindWishlists), w.opts)
	w.Tasks = syncstore.New[domain.Task](api.NewResource[domain.Task](rc, domain.KindTasks), w.opts)
	w.Deliveries = syncstore.New[domain.Delivery](api.NewResource[domain.Delivery](rc, domain.KindDeliveries), w.opts)
	w.Workers = syncstore.New[domain.Worker](api.NewResource[domain.Worker](rc, domain.KindWorkers), w.opts)
	return w, nil
}

// WorkerTasks returns the shared store for one worker's task list.
func (w *Wire) WorkerTasks(workerID string) *syncstore.Store[domain.Task] {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.workerTasks[workerID]
	if !ok {
		s = syncstore.New[domain.Task](api.NewWorkerTasks(w.rc, workerID), w.opts)
		w.workerTasks[workerID] = s
	}
	return s
}

// User returns the held user.
func (w *Wire) User() (domain.User, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user, w.user.ID != ""
}

func (w *Wire) token() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user.Token
}

func (w *Wire) setUser(u domain.User) {
	w.mu.Lock()
	w.user = u
	w.mu.Unlock()
}

// SignIn logs in against the API and seals the user with passphrase.
func (w *Wire) SignIn(ctx context.Context, name string, role domain.Role, passphrase string) (domain.User, error) {
	u, err := w.Auth.Login(ctx, name, role)
	if err != nil {
		return domain.User{}, err
	}
	if err := w.Session.SaveUser(passphrase, u); err != nil {
		return domain.User{}, err
	}
	w.setUser(u)
	w.Logger.Info("signed in", "user", u.ID, "role", u.Role)
	return u, nil
}

// Resume loads the stored user, failing with domain.ErrNotSignedIn when
// there is none.
func (w *Wire) Resume(passphrase string) (domain.User, error) {
	u, ok, err := w.Session.LoadUser(passphrase)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrNotSignedIn
	}
	w.setUser(u)
	return u, nil
}

// SignOut forgets the user locally and on disk.
func (w *Wire) SignOut() error {
	w.setUser(domain.User{})
	return w.Session.ClearUser()
}
