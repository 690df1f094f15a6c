package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/sirupsen/logrus"
)

type ServiceCatalogUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	List(ctx context.Context) (*dto.ServiceListResponse, error)
}

type serviceCatalogUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceCatalogUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceCatalogUsecase {
	return &serviceCatalogUsecase{
		log:          log,
		tx:           tx,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceCatalogUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &entity.Service{Name: strings.TrimSpace(req.Name)}
	if svc.Name == "" {
		return nil, apperror.Validation("name is required")
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.serviceRepo.FindByUniqueField(ctx, "name", svc.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("service already exists")
		}
		if _, err := u.serviceRepo.Save(ctx, svc); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return apperror.Conflict("service already exists")
			}
			return err
		}
		return u.auditService.LogCreate(ctx, nil, entity.AuditActionServiceCreate, "service", svc.ID.String(),
			map[string]interface{}{"name": svc.Name})
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			u.log.Warnf("Failed to create service: %+v", err)
		}
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceCatalogUsecase) List(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.List(ctx)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, err
	}
	responses := converter.ServicesToResponses(services)
	return &dto.ServiceListResponse{Services: responses, Total: len(responses)}, nil
}
