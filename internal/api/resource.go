package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"santaos/internal/domain"
)

// Resource is the typed client for one REST collection.
type Resource[T domain.Resource] struct {
	c    *HTTP
	kind domain.Kind
	// listPath serves GET; itemPath is the collection that owns mutations.
	listPath string
	itemPath string
}

// NewResource returns a client for the collection at /{kind}.
func NewResource[T domain.Resource](c *HTTP, kind domain.Kind) *Resource[T] {
	p := "/" + url.PathEscape(kind.String())
	return &Resource[T]{c: c, kind: kind, listPath: p, itemPath: p}
}

// NewWorkerTasks lists /workers/{id}/tasks while routing mutations to /tasks.
func NewWorkerTasks(c *HTTP, workerID string) *Resource[domain.Task] {
	return &Resource[domain.Task]{
		c:        c,
		kind:     domain.KindWorkerTasks,
		listPath: "/workers/" + url.PathEscape(workerID) + "/tasks",
		itemPath: "/" + domain.KindTasks.String(),
	}
}

// Kind implements domain.ResourceClient.
func (r *Resource[T]) Kind() domain.Kind { return r.kind }

// List fetches the collection in server order and validates every record.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	res, err := r.c.do(ctx, http.MethodGet, r.listPath, nil, &items)
	if err != nil {
		return nil, err
	}
	if !res.echoed {
		return nil, malformed(res.status, http.MethodGet, r.listPath, "empty body, want a JSON array")
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, malformed(res.status, http.MethodGet, r.listPath, "item %d: %v", i, err)
		}
		id := it.ResourceID()
		if _, dup := seen[id]; dup {
			return nil, malformed(res.status, http.MethodGet, r.listPath, "duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts payload and returns the echoed record, if any.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, bool, error) {
	return r.write(ctx, http.MethodPost, r.itemPath, "", payload)
}

// Update patches id, on the operation's sub-path when it has one.
func (r *Resource[T]) Update(ctx context.Context, id string, op domain.Operation, patch any) (T, bool, error) {
	path := r.itemPath + "/" + url.PathEscape(id)
	if sub := op.SubPath(); sub != "" {
		path += "/" + sub
	}
	return r.write(ctx, http.MethodPatch, path, id, patch)
}

// Delete removes id. Any response body is ignored.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.itemPath+"/"+url.PathEscape(id), nil, nil)
	return err
}

func (r *Resource[T]) write(ctx context.Context, method, path, wantID string, payload any) (T, bool, error) {
	var zero, out T
	res, err := r.c.do(ctx, method, path, payload, &out)
	if err != nil {
		return zero, false, err
	}
	if !res.echoed {
		return zero, false, nil
	}
	if err := out.Validate(); err != nil {
		return zero, false, malformed(res.status, method, path, "%v", err)
	}
	if wantID != "" && out.ResourceID() != wantID {
		return zero, false, malformed(res.status, method, path, "echoed id %q, want %q", out.ResourceID(), wantID)
	}
	return out, true, nil
}

func malformed(status int, method, path, format string, args ...any) error {
	return &domain.ServerError{
		Status:  status,
		Method:  method,
		Path:    path,
		Message: "malformed response: " + fmt.Sprintf(format, args...),
	}
}

var (
	_ domain.ResourceClient[domain.Wishlist] = (*Resource[domain.Wishlist])(nil)
	_ domain.ResourceClient[domain.Task]     = (*Resource[domain.Task])(nil)
	_ domain.ResourceClient[domain.Delivery] = (*Resource[domain.Delivery])(nil)
	_ domain.ResourceClient[domain.Worker]   = (*Resource[domain.Worker])(nil)
)
