package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct {
	*BaseRepository[entity.User]
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{NewBaseRepository[entity.User](db, "user")}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.FindByUniqueField(ctx, "email", email)
}
