package repository

import (
	"context"
	"errors"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type kycRepository struct {
	*BaseRepository[entity.Kyc]
}

func NewKycRepository(db *gorm.DB) domainRepo.KycRepository {
	return &kycRepository{NewBaseRepository[entity.Kyc](db, "kyc")}
}

func (r *kycRepository) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) (*entity.Kyc, error) {
	var kyc entity.Kyc
	err := r.conn(ctx).Where("practitioner_id = ?", practitionerID).Take(&kyc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readError(err, "kyc")
	}
	return &kyc, nil
}

func (r *kycRepository) FindByStatus(ctx context.Context, status entity.KycStatus) ([]entity.Kyc, error) {
	var kycs []entity.Kyc
	err := r.conn(ctx).Where("status = ?", status).Order("created_at ASC").Find(&kycs).Error
	if err != nil {
		return nil, readError(err, "kyc")
	}
	return kycs, nil
}

func (r *kycRepository) TransitionStatus(ctx context.Context, practitionerID uuid.UUID, from, to entity.KycStatus) (int64, error) {
	result := r.conn(ctx).Model(&entity.Kyc{}).
		Where("practitioner_id = ? AND status = ?", practitionerID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, translateWriteError(result.Error, "kyc")
	}
	return result.RowsAffected, nil
}
