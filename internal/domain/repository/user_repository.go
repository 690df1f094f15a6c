package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"
)

type UserRepository interface {
	BaseRepository[entity.User]
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
