package syncstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"santaos/internal/domain"
)

// MutationState is the lifecycle of one submission.
type MutationState int

// idle → in_flight → {applied, failed}
const (
	MutationIdle MutationState = iota
	MutationInFlight
	MutationApplied
	MutationFailed
)

func (m MutationState) String() string {
	switch m {
	case MutationIdle:
		return "idle"
	case MutationInFlight:
		return "in_flight"
	case MutationApplied:
		return "applied"
	case MutationFailed:
		return "failed"
	}
	return fmt.Sprintf("MutationState(%d)", int(m))
}

// PendingMutation records a submission while its request is in flight.
type PendingMutation struct {
	ResourceID  string
	Op          domain.Operation
	SubmittedAt time.Time
	State       MutationState
}

type pendingKey struct {
	id string
	op domain.Operation
}

var errNoID = errors.New("operation requires a resource id")

// Submit performs one mutation and patches the snapshot on success. id is
// empty for OpCreate. The returned record is the server's representation, the
// locally merged record for a bodiless update, or the zero value for delete
// and for a create the server did not echo.
func (s *Store[T]) Submit(ctx context.Context, id string, op domain.Operation, payload any) (T, error) {
	var zero T
	switch {
	case !op.Valid():
		return zero, fmt.Errorf("%s: unknown operation %q", s.kind, op)
	case op.RequiresID() && id == "":
		return zero, fmt.Errorf("%s %s: %w", s.kind, op, errNoID)
	case !op.RequiresID() && id != "":
		return zero, fmt.Errorf("%s %s: create takes no id, got %q", s.kind, op, id)
	}

	key := pendingKey{id: id, op: op}
	s.mu.Lock()
	if _, busy := s.pending[key]; busy {
		s.mu.Unlock()
		return zero, &domain.DuplicateInFlightError{Kind: s.kind, ResourceID: id, Op: op}
	}
	pm := &PendingMutation{ResourceID: id, Op: op, SubmittedAt: s.clock.Now(), State: MutationInFlight}
	s.pending[key] = pm
	epoch := s.epoch
	s.mu.Unlock()
	s.notify()

	start := s.clock.Now()
	out, echoed, err := s.call(ctx, id, op, payload)
	s.observe(ctx, op.String(), err, start)

	s.mu.Lock()
	delete(s.pending, key)
	if err != nil {
		pm.State = MutationFailed
		s.mu.Unlock()
		s.logger.Warn("mutation failed", "resource", s.kind, "id", id, "op", op, "error", err)
		s.notify()
		return zero, err
	}
	pm.State = MutationApplied

	live := s.epoch == epoch && s.runCtx != nil
	var reconcile bool
	if live {
		p, ok := s.patchFor(id, op, out, echoed, payload)
		if ok {
			s.items = p.apply(s.items)
			if s.fetching {
				s.replay = append(s.replay, p)
			}
			if op != domain.OpDelete && !echoed {
				out = p.item
			}
		} else {
			reconcile = true
		}
	}
	s.mu.Unlock()

	s.logger.Debug("mutation applied", "resource", s.kind, "id", id, "op", op, "echoed", echoed, "live", live)
	s.notify()
	if reconcile {
		s.RefreshNow(ctx)
	}
	return out, nil
}

func (s *Store[T]) call(ctx context.Context, id string, op domain.Operation, payload any) (T, bool, error) {
	switch op {
	case domain.OpCreate:
		return s.client.Create(ctx, payload)
	case domain.OpDelete:
		var zero T
		return zero, false, s.client.Delete(ctx, id)
	default:
		return s.client.Update(ctx, id, op, payload)
	}
}

// patchFor builds the optimistic patch for a successful call. It must be
// called with s.mu held. ok is false when only a refetch can tell what the
// server did.
func (s *Store[T]) patchFor(id string, op domain.Operation, out T, echoed bool, payload any) (patch[T], bool) {
	switch {
	case op == domain.OpDelete:
		return patch[T]{kind: patchRemove, id: id}, true
	case op == domain.OpCreate && echoed:
		return patch[T]{kind: patchUpsert, id: out.ResourceID(), item: out}, true
	case op == domain.OpCreate:
		return patch[T]{}, false
	case echoed:
		return patch[T]{kind: patchReplace, id: id, item: out}, true
	}

	for _, it := range s.items {
		if it.ResourceID() != id {
			continue
		}
		merged, err := mergeJSON(it, payload)
		if err != nil || merged.ResourceID() != id {
			s.logger.Warn("local merge failed", "resource", s.kind, "id", id, "op", op, "error", err)
			return patch[T]{}, false
		}
		return patch[T]{kind: patchReplace, id: id, item: merged}, true
	}
	return patch[T]{}, false
}
