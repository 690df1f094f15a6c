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

type practitionerRepository struct {
	*BaseRepository[entity.Practitioner]
}

func NewPractitionerRepository(db *gorm.DB) domainRepo.PractitionerRepository {
	return &practitionerRepository{NewBaseRepository[entity.Practitioner](db, "practitioner")}
}

func (r *practitionerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Practitioner, error) {
	return findPractitioner(r.withProfile(r.conn(ctx)).Where("user_id = ?", userID))
}

func (r *practitionerRepository) FindDetailed(ctx context.Context, id uuid.UUID) (*entity.Practitioner, error) {
	query := r.withProfile(r.conn(ctx)).
		Preload("Availabilities", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC, day_of_week ASC")
		}).
		Where("id = ?", id)
	return findPractitioner(query)
}

func (r *practitionerRepository) withProfile(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Kyc").
		Preload("Location").
		Preload("ProfilePicture").
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("services.name ASC")
		})
}

func findPractitioner(query *gorm.DB) (*entity.Practitioner, error) {
	var practitioner entity.Practitioner
	if err := query.Take(&practitioner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "practitioner")
	}
	return &practitioner, nil
}

func (r *practitionerRepository) UpsertLocation(ctx context.Context, location *entity.PractitionerLocation) error {
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "practitioner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "address", "updated_at"}),
	}).Create(location).Error
	return translateWriteError(err, "practitioner location")
}

func (r *practitionerRepository) UpsertPicture(ctx context.Context, picture *entity.PractitionerProfilePicture) error {
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "practitioner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"picture_url", "updated_at"}),
	}).Create(picture).Error
	return translateWriteError(err, "practitioner picture")
}

func (r *practitionerRepository) OffersService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.PractitionerService{}).
		Where("practitioner_id = ? AND service_id = ?", practitionerID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, readError(err, "practitioner service")
	}
	return count > 0, nil
}

func (r *practitionerRepository) AttachService(ctx context.Context, practitionerID, serviceID uuid.UUID) error {
	link := &entity.PractitionerService{PractitionerID: practitionerID, ServiceID: serviceID}
	err := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
	return translateWriteError(err, "practitioner service")
}

func (r *practitionerRepository) DetachService(ctx context.Context, practitionerID, serviceID uuid.UUID) (bool, error) {
	result := r.conn(ctx).
		Where("practitioner_id = ? AND service_id = ?", practitionerID, serviceID).
		Delete(&entity.PractitionerService{})
	if result.Error != nil {
		return false, translateDeleteError(result.Error, "practitioner service")
	}
	return result.RowsAffected > 0, nil
}
