package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	BaseRepository[entity.Patient]
	// FindByUserID preloads location and picture.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error)
	UpsertLocation(ctx context.Context, location *entity.PatientLocation) error
	UpsertPicture(ctx context.Context, picture *entity.PatientProfilePicture) error
}

type PractitionerRepository interface {
	BaseRepository[entity.Practitioner]
	// FindByUserID preloads kyc, location, picture and services.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Practitioner, error)
	// FindDetailed also preloads availabilities.
	FindDetailed(ctx context.Context, id uuid.UUID) (*entity.Practitioner, error)
	UpsertLocation(ctx context.Context, location *entity.PractitionerLocation) error
	UpsertPicture(ctx context.Context, picture *entity.PractitionerProfilePicture) error
	OffersService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error)
	AttachService(ctx context.Context, practitionerID, serviceID uuid.UUID) error
	DetachService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error)
}
