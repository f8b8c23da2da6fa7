package interfaces

import (
	"context"

	domaintypes "santaos/internal/domain/types"
)

// ResourceClient is the typed REST contract for one resource collection.
//
// Create and Update report whether the server echoed a representation; a
// false echo with a nil error means the server answered 2xx with no body.
type ResourceClient[T domaintypes.Resource] interface {
	Kind() domaintypes.Kind
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload any) (T, bool, error)
	Update(ctx context.Context, id string, op domaintypes.Operation, patch any) (T, bool, error)
	Delete(ctx context.Context, id string) error
}
