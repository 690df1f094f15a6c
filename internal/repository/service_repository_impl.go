package repository

import (
	"context"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct {
	*BaseRepository[entity.Service]
}

func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{NewBaseRepository[entity.Service](db, "service")}
}

func (r *serviceRepository) FindByPractitionerID(ctx context.Context, practitionerID uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	err := r.conn(ctx).
		Joins("JOIN practitioner_services ON practitioner_services.service_id = services.id").
		Where("practitioner_services.practitioner_id = ?", practitionerID).
		Order("services.name ASC").
		Find(&services).Error
	if err != nil {
		return nil, readError(err, "service")
	}
	return services, nil
}
