package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	BaseRepository[entity.Service]
	FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Service, error)
}
