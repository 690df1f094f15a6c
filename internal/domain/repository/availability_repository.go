package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type AvailabilityRepository interface {
	BaseRepository[entity.Availability]
	FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Availability, error)
	FindBySlot(ctx context.Context, practitionerID uuid.UUID, day entity.DayOfWeek, week entity.WeekNumber) (*entity.Availability, error)
	// FindForUpdate locks the row until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*entity.Availability, error)
	HasAppointments(ctx context.Context, id uuid.UUID) (bool, error)
}
