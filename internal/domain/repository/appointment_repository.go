package repository

import (
	"context"
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	BaseRepository[entity.Appointment]
	FindWithState(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindActiveBySlot(ctx context.Context, practitionerID, availabilityID uuid.UUID, slotDate time.Time) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Appointment, error)
	// TransitionStatus moves the state row from one status to another only if
	// it still holds from. It returns the number of rows changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
}
