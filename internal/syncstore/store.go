package syncstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"santaos/internal/domain"
	"santaos/internal/observability"
)

// DefaultInterval is the poll period used when Start is given none.
const DefaultInterval = 30 * time.Second

// Options configures a Store. Zero values are valid.
type Options struct {
	Clock   clockwork.Clock
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// State is an immutable copy of a store's sync state.
type State[T domain.Resource] struct {
	Kind          domain.Kind
	Items         []T
	LastFetchedAt time.Time
	IsLoading     bool
	LastError     error
	// Active is false before the first Start and after the last Stop.
	Active bool
}

// Reason is the user-facing text of LastError, or "".
func (s State[T]) Reason() string { return domain.Reason(s.LastError) }

// Find returns the item with id.
func (s State[T]) Find(id string) (T, bool) {
	for _, it := range s.Items {
		if it.ResourceID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Store owns the collection snapshot of one resource type.
type Store[T domain.Resource] struct {
	kind    domain.Kind
	client  domain.ResourceClient[T]
	clock   clockwork.Clock
	logger  observability.Logger
	metrics observability.MetricsRecorder
	group   singleflight.Group

	mu        sync.Mutex
	items     []T
	fetchedAt time.Time
	loading   bool
	lastErr   error

	epoch  uint64
	refs   int
	runCtx context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// fetching is set while a List call is outstanding; patches applied in
	// that window are queued in replay and re-applied over its result.
	fetching bool
	replay   []patch[T]

	pending  map[pendingKey]*PendingMutation
	watchers map[chan struct{}]struct{}
}

// New returns an idle store for the client's resource type.
func New[T domain.Resource](client domain.ResourceClient[T], opts Options) *Store[T] {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var metrics observability.MetricsRecorder = observability.NoopMetrics{}
	if opts.Metrics != nil {
		metrics = opts.Metrics
	}
	return &Store[T]{
		kind:     client.Kind(),
		client:   client,
		clock:    clock,
		logger:   observability.OrNoop(opts.Logger),
		metrics:  metrics,
		pending:  make(map[pendingKey]*PendingMutation),
		watchers: make(map[chan struct{}]struct{}),
	}
}

// Kind returns the resource type this store tracks.
func (s *Store[T]) Kind() domain.Kind { return s.kind }

// State returns a copy of the current sync state.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return State[T]{
		Kind:          s.kind,
		Items:         items,
		LastFetchedAt: s.fetchedAt,
		IsLoading:     s.loading,
		LastError:     s.lastErr,
		Active:        s.runCtx != nil,
	}
}

// Changes returns a channel signalled after every state transition, and a
// func that unsubscribes it. Signals coalesce; read State after each one.
func (s *Store[T]) Changes() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, ch)
			s.mu.Unlock()
		})
	}
}

func (s *Store[T]) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Pending lists in-flight mutations, oldest first.
func (s *Store[T]) Pending() []PendingMutation {
	s.mu.Lock()
	out := make([]PendingMutation, 0, len(s.pending))
	for _, pm := range s.pending {
		out = append(out, *pm)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out
}

// IsPending reports whether (id, op) has a mutation in flight.
func (s *Store[T]) IsPending(id string, op domain.Operation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[pendingKey{id: id, op: op}]
	return ok
}

func (s *Store[T]) observe(ctx context.Context, op string, err error, since time.Time) {
	s.metrics.Observe(ctx, fmt.Sprintf("%s.%s", s.kind, op), err == nil, s.clock.Since(since))
}
