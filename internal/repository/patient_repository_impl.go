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

type patientRepository struct {
	*BaseRepository[entity.Patient]
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{NewBaseRepository[entity.Patient](db, "patient")}
}

func (r *patientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.conn(ctx).
		Preload("Location").
		Preload("ProfilePicture").
		Where("user_id = ?", userID).
		Take(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) UpsertLocation(ctx context.Context, location *entity.PatientLocation) error {
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "patient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "address", "updated_at"}),
	}).Create(location).Error
	return translateWriteError(err, "patient location")
}

func (r *patientRepository) UpsertPicture(ctx context.Context, picture *entity.PatientProfilePicture) error {
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "patient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"picture_url", "updated_at"}),
	}).Create(picture).Error
	return translateWriteError(err, "patient picture")
}
