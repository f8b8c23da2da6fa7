package syncstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Handle is returned by Start; Stop releases it.
type Handle struct {
	once sync.Once
	stop func()
}

// Stop releases this subscription. It is safe to call more than once.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.stop)
}

// Start subscribes a view. The first subscriber fetches immediately and then
// every interval; later subscribers share that schedule.
func (s *Store[T]) Start(interval time.Duration) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	h := &Handle{stop: s.release}

	s.mu.Lock()
	s.refs++
	if s.refs > 1 {
		s.mu.Unlock()
		s.logger.Debug("sync store shared", "resource", s.kind, "subscribers", s.refs)
		return h
	}
	s.epoch++
	epoch := s.epoch
	ctx, cancel := context.WithCancel(context.Background())
	s.runCtx, s.cancel = ctx, cancel
	s.done = make(chan struct{})
	s.loading = true
	done := s.done
	s.mu.Unlock()

	s.logger.Debug("sync store started", "resource", s.kind, "interval", interval)
	s.notify()
	go s.loop(ctx, epoch, interval, done)
	return h
}

func (s *Store[T]) release() {
	s.mu.Lock()
	s.refs--
	if s.refs > 0 {
		s.mu.Unlock()
		return
	}
	s.refs = 0
	cancel, done := s.cancel, s.done
	s.epoch++
	s.runCtx, s.cancel, s.done = nil, nil, nil
	s.items = nil
	s.fetchedAt = time.Time{}
	s.loading = false
	s.lastErr = nil
	s.fetching = false
	s.replay = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.logger.Debug("sync store stopped", "resource", s.kind)
	s.notify()
}

func (s *Store[T]) loop(ctx context.Context, epoch uint64, interval time.Duration, done chan struct{}) {
	defer close(done)

	// The schedule is anchored at Start, not at the end of the first fetch.
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	<-s.refresh(ctx, epoch)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			<-s.refresh(ctx, epoch)
		}
	}
}

// RefreshNow fetches outside the schedule, joining any fetch already in
// flight. It returns once that fetch resolves or ctx ends. Failures land in
// State().LastError. Without an active subscriber it does nothing.
func (s *Store[T]) RefreshNow(ctx context.Context) {
	s.mu.Lock()
	runCtx, epoch := s.runCtx, s.epoch
	s.mu.Unlock()
	if runCtx == nil {
		return
	}
	select {
	case <-s.refresh(runCtx, epoch):
	case <-ctx.Done():
	}
}

// refresh runs at most one fetch per epoch at a time.
func (s *Store[T]) refresh(runCtx context.Context, epoch uint64) <-chan singleflight.Result {
	key := fmt.Sprintf("%s#%d", s.kind, epoch)
	return s.group.DoChan(key, func() (any, error) {
		s.fetch(runCtx, epoch)
		return nil, nil
	})
}

func (s *Store[T]) fetch(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.fetching = true
	s.replay = nil
	s.mu.Unlock()
	s.notify()

	start := s.clock.Now()
	items, err := s.client.List(ctx)
	s.observe(ctx, "fetch", err, start)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.loading = false
	s.fetching = false
	replay := s.replay
	s.replay = nil
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Warn("fetch failed", "resource", s.kind, "error", err)
		s.notify()
		return
	}
	for _, p := range replay {
		items = p.apply(items)
	}
	s.items = items
	s.lastErr = nil
	s.fetchedAt = s.clock.Now()
	s.mu.Unlock()

	s.logger.Debug("fetch ok", "resource", s.kind, "count", len(items), "replayed", len(replay))
	s.notify()
}
