package syncstore

import (
	"encoding/json"
	"fmt"

	"santaos/internal/domain"
)

type patchKind int

const (
	patchUpsert patchKind = iota + 1
	patchReplace
	patchRemove
)

// patch is one optimistic edit of a snapshot. apply never mutates its input.
type patch[T domain.Resource] struct {
	kind patchKind
	id   string
	item T
}

func (p patch[T]) apply(items []T) []T {
	out := make([]T, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ResourceID() != p.id {
			out = append(out, it)
			continue
		}
		found = true
		switch p.kind {
		case patchUpsert, patchReplace:
			out = append(out, p.item)
		case patchRemove:
		}
	}
	if !found && p.kind == patchUpsert {
		out = append(out, p.item)
	}
	return out
}

// mergeJSON overlays the top-level fields of fields onto base.
func mergeJSON[T any](base T, fields any) (T, error) {
	var merged T
	doc, err := toObject(base)
	if err != nil {
		return merged, err
	}
	overlay, err := toObject(fields)
	if err != nil {
		return merged, fmt.Errorf("patch: %w", err)
	}
	for k, v := range overlay {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return merged, err
	}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return merged, err
	}
	return merged, nil
}

func toObject(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("not a JSON object")
	}
	return m, nil
}
