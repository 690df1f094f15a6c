package repository

import (
	"context"

	"github.com/google/uuid"
)

// BaseRepository is the persistence contract shared by every uuid-keyed
// entity. A missing row is reported as (nil, nil); store failures are
// always returned as errors.
type BaseRepository[T any] interface {
	// Save inserts all items in one unit of work.
	Save(ctx context.Context, items ...*T) ([]*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// FindByUniqueField fails with a persistence error when more than one row matches.
	FindByUniqueField(ctx context.Context, field string, value any) (*T, error)
	// Update applies a field patch and returns the reloaded entity, or nil if id is unknown.
	Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// Transactor runs fn inside one database transaction. Repositories called
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
