package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type KycRepository interface {
	BaseRepository[entity.Kyc]
	FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) (*entity.Kyc, error)
	FindByStatus(ctx context.Context, status entity.KycStatus) ([]entity.Kyc, error)
	TransitionStatus(ctx context.Context, practitionerID uuid.UUID, from, to entity.KycStatus) (int64, error)
}
