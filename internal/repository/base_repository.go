package repository

import (
	"context"
	"errors"

	"clinic-booking-service/internal/domain/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaseRepository implements the uuid-keyed CRUD contract for any gorm model.
// name is used in error messages.
type BaseRepository[T any] struct {
	db   *gorm.DB
	name string
}

func NewBaseRepository[T any](db *gorm.DB, name string) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, name: name}
}

func (r *BaseRepository[T]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

func (r *BaseRepository[T]) Save(ctx context.Context, items ...*T) ([]*T, error) {
	if len(items) == 0 {
		return nil, nil
	}
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateWriteError(err, r.name)
	}
	return items, nil
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	err := r.conn(ctx).Where("id = ?", id).Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, r.name)
	}
	return &out, nil
}

func (r *BaseRepository[T]) FindByUniqueField(ctx context.Context, field string, value any) (*T, error) {
	var rows []T
	err := r.conn(ctx).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, readError(err, r.name)
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, apperror.Persistence("more than one "+r.name+" matches "+field, nil)
	}
}

func (r *BaseRepository[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]any) (*T, error) {
	if len(patch) == 0 {
		return r.FindByID(ctx, id)
	}
	result := r.conn(ctx).Model(new(T)).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, translateWriteError(result.Error, r.name)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *BaseRepository[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := r.conn(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, readError(err, r.name)
	}
	return rows, nil
}

func (r *BaseRepository[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.conn(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, translateDeleteError(result.Error, r.name)
	}
	return result.RowsAffected > 0, nil
}
