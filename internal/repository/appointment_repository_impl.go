package repository

import (
	"context"
	"errors"
	"time"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const slotDateLayout = "2006-01-02"

type appointmentRepository struct {
	*BaseRepository[entity.Appointment]
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository[entity.Appointment](db, "appointment")}
}

func (r *appointmentRepository) FindWithState(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.conn(ctx).Preload("State").Preload("Service").Where("id = ?", id).Take(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveBySlot(ctx context.Context, practitionerID, availabilityID uuid.UUID, slotDate time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.conn(ctx).
		Where("practitioner_id = ? AND availability_id = ? AND slot_date = ? AND active = ?",
			practitionerID, availabilityID, slotDate.Format(slotDateLayout), true).
		Take(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.findMany(ctx, "patient_id = ?", patientID)
}

func (r *appointmentRepository) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Appointment, error) {
	return r.findMany(ctx, "practitioner_id = ?", practitionerID)
}

func (r *appointmentRepository) findMany(ctx context.Context, where string, arg any) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.conn(ctx).
		Preload("State").
		Preload("Service").
		Where(where, arg).
		Order("slot_date DESC, created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, readError(err, "appointment")
	}
	return appointments, nil
}

// TransitionStatus updates the state row only if it still holds from, so
// two concurrent transitions cannot both succeed. The appointment's active
// flag follows the new status in the same unit of work.
func (r *appointmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	var affected int64
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.AppointmentState{}).
			Where("appointment_id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&entity.Appointment{}).
			Where("id = ?", id).
			Update("active", to.HoldsSlot()).Error
	})
	if err != nil {
		return 0, translateWriteError(err, "appointment state")
	}
	return affected, nil
}
