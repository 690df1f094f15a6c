package repository

import (
	"context"
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilityRepository struct {
	*BaseRepository[entity.Availability]
}

func NewAvailabilityRepository(db *gorm.DB) domainRepo.AvailabilityRepository {
	return &availabilityRepository{NewBaseRepository[entity.Availability](db, "availability")}
}

func (r *availabilityRepository) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := r.conn(ctx).
		Where("practitioner_id = ?", practitionerID).
		Order("week_number ASC, day_of_week ASC").
		Find(&availabilities).Error
	if err != nil {
		return nil, readError(err, "availability")
	}
	return availabilities, nil
}

func (r *availabilityRepository) FindBySlot(ctx context.Context, practitionerID uuid.UUID, day entity.DayOfWeek, week entity.WeekNumber) (*entity.Availability, error) {
	var availability entity.Availability
	err := r.conn(ctx).
		Where("practitioner_id = ? AND day_of_week = ? AND week_number = ?", practitionerID, day, week).
		Take(&availability).Error
	return r.single(&availability, err)
}

// FindForUpdate serializes bookings on one availability: concurrent creators
// queue on the row lock until the holder commits.
func (r *availabilityRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	var availability entity.Availability
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&availability).Error
	return r.single(&availability, err)
}

func (r *availabilityRepository) HasAppointments(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Appointment{}).Where("availability_id = ?", id).Count(&count).Error
	if err != nil {
		return false, readError(err, "appointment")
	}
	return count > 0, nil
}

func (r *availabilityRepository) single(availability *entity.Availability, err error) (*entity.Availability, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "availability")
	}
	return availability, nil
}
