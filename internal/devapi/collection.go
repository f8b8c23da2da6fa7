package devapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"santaos/internal/domain"
)

var errNotFound = errors.New("not found")

// collection is an ordered, mutex-guarded table of one resource type.
type collection[T domain.Resource] struct {
	kind domain.Kind

	// newItem seeds a record before the request body is laid over it.
	newItem func(id string, u domain.User, now time.Time) T
	// check applies create/update rules beyond Validate. Optional.
	check func(T) error
	// touch stamps an update time. Optional.
	touch func(T, time.Time) T
	// visible filters lists per caller. Optional.
	visible func(domain.User, T) bool

	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newCollection[T domain.Resource](kind domain.Kind) *collection[T] {
	return &collection[T]{kind: kind, items: make(map[string]T)}
}

func (c *collection[T]) list(u domain.User, keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		it := c.items[id]
		if c.visible != nil && !c.visible(u, it) {
			continue
		}
		if keep != nil && !keep(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[id]
	return it, ok
}

// put inserts or replaces a record without running any rules.
func (c *collection[T]) put(it T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := it.ResourceID()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = it
}

func (c *collection[T]) create(id string, u domain.User, now time.Time, body map[string]json.RawMessage) (T, error) {
	delete(body, "id")
	it, err := overlay(c.newItem(id, u, now), body)
	if err != nil {
		return it, err
	}
	if err := c.rules(it); err != nil {
		return it, err
	}
	c.put(it)
	return it, nil
}

// patch lays the allowed fields of body over the record. A nil allow list
// accepts every field except id.
func (c *collection[T]) patch(id string, now time.Time, body map[string]json.RawMessage, allow []string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.items[id]
	if !ok {
		var zero T
		return zero, errNotFound
	}
	fields := map[string]json.RawMessage{}
	if allow == nil {
		for k, v := range body {
			if k != "id" {
				fields[k] = v
			}
		}
	} else {
		for _, k := range allow {
			v, ok := body[k]
			if !ok {
				return cur, fmt.Errorf("missing field %q", k)
			}
			fields[k] = v
		}
	}
	next, err := overlay(cur, fields)
	if err != nil {
		return cur, err
	}
	if c.touch != nil {
		next = c.touch(next, now)
	}
	if err := c.rules(next); err != nil {
		return cur, err
	}
	c.items[id] = next
	return next, nil
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) rules(it T) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if c.check != nil {
		return c.check(it)
	}
	return nil
}

// overlay replaces the top-level JSON fields of base with fields.
func overlay[T any](base T, fields map[string]json.RawMessage) (T, error) {
	var out T
	raw, err := json.Marshal(base)
	if err != nil {
		return out, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	if raw, err = json.Marshal(doc); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("bad field: %w", err)
	}
	return out, nil
}

// mount registers the REST routes of c for the given mutations.
func mount[T domain.Resource](s *Server, mux *http.ServeMux, c *collection[T], ops ...domain.Operation) {
	base := "/" + c.kind.String()
	mux.HandleFunc("GET "+base, s.authed(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		writeJSON(w, http.StatusOK, c.list(u, nil))
	}))
	for _, op := range ops {
		switch op {
		case domain.OpCreate:
			mux.HandleFunc("POST "+base, s.mutation(c.kind, op, func(w http.ResponseWriter, r *http.Request, u domain.User, body map[string]json.RawMessage) {
				it, err := c.create(s.newID(), u, s.now(), body)
				if err != nil {
					writeError(w, http.StatusBadRequest, err.Error())
					return
				}
				s.written(w, http.StatusCreated, it)
			}))
		case domain.OpDelete:
			mux.HandleFunc("DELETE "+base+"/{id}", s.authed(func(w http.ResponseWriter, r *http.Request, u domain.User) {
				if !u.CanMutate(c.kind, op) {
					writeError(w, http.StatusForbidden, fmt.Sprintf("%s may not %s %s", u.Role, op, c.kind))
					return
				}
				id := r.PathValue("id")
				if it, ok := c.get(id); ok && c.visible != nil && !c.visible(u, it) {
					writeError(w, http.StatusNotFound, c.kind.String()+" "+id+" not found")
					return
				}
				if !c.remove(id) {
					writeError(w, http.StatusNotFound, c.kind.String()+" "+id+" not found")
					return
				}
				w.WriteHeader(http.StatusNoContent)
			}))
		default:
			path := base + "/{id}"
			var allow []string
			switch op {
			case domain.OpUpdateStatus:
				path, allow = path+"/status", []string{"status"}
			case domain.OpAssign:
				path, allow = path+"/assign", []string{"assigned_to"}
			}
			mux.HandleFunc("PATCH "+path, s.mutation(c.kind, op, func(w http.ResponseWriter, r *http.Request, u domain.User, body map[string]json.RawMessage) {
				id := r.PathValue("id")
				it, err := c.patch(id, s.now(), body, allow)
				switch {
				case errors.Is(err, errNotFound):
					writeError(w, http.StatusNotFound, c.kind.String()+" "+id+" not found")
				case err != nil:
					writeError(w, http.StatusBadRequest, err.Error())
				default:
					s.written(w, http.StatusOK, it)
				}
			}))
		}
	}
}
