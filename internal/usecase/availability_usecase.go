package usecase

import (
	"context"
	"errors"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AvailabilityUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) (*dto.AvailabilityListResponse, error)
	ListForPractitioner(ctx context.Context, practitionerID uuid.UUID) (*dto.AvailabilityListResponse, error)
	Delete(ctx context.Context, userID, availabilityID uuid.UUID) error
}

type availabilityUsecase struct {
	log              *logrus.Logger
	tx               repository.Transactor
	availabilityRepo repository.AvailabilityRepository
	practitionerRepo repository.PractitionerRepository
	auditService     service.AuditService
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	availabilityRepo repository.AvailabilityRepository,
	practitionerRepo repository.PractitionerRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:              log,
		tx:               tx,
		availabilityRepo: availabilityRepo,
		practitionerRepo: practitionerRepo,
		auditService:     auditService,
	}
}

func (u *availabilityUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	practitioner, err := u.practitioner(ctx, userID)
	if err != nil {
		return nil, err
	}

	availability := &entity.Availability{
		PractitionerID: practitioner.ID,
		DayOfWeek:      entity.DayOfWeek(req.DayOfWeek),
		WeekNumber:     entity.WeekNumber(req.WeekNumber),
	}
	if err := availability.Validate(); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.availabilityRepo.FindBySlot(ctx, practitioner.ID, availability.DayOfWeek, availability.WeekNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("availability already exists")
		}
		if _, err := u.availabilityRepo.Save(ctx, availability); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionAvailabilityCreate, "availability", availability.ID.String(),
			map[string]interface{}{"day_of_week": availability.DayOfWeek, "week_number": availability.WeekNumber})
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			u.log.Warnf("Failed to create availability: %+v", err)
		}
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) ListMine(ctx context.Context, userID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	practitioner, err := u.practitioner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, practitioner.ID)
}

func (u *availabilityUsecase) ListForPractitioner(ctx context.Context, practitionerID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	practitioner, err := u.practitionerRepo.FindByID(ctx, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}
	return u.list(ctx, practitioner.ID)
}

func (u *availabilityUsecase) list(ctx context.Context, practitionerID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	availabilities, err := u.availabilityRepo.FindByPractitionerID(ctx, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to list availabilities: %+v", err)
		return nil, err
	}
	responses := converter.AvailabilitiesToResponses(availabilities)
	return &dto.AvailabilityListResponse{Availabilities: responses, Total: len(responses)}, nil
}

// Delete removes an availability that no appointment refers to.
func (u *availabilityUsecase) Delete(ctx context.Context, userID, availabilityID uuid.UUID) error {
	practitioner, err := u.practitioner(ctx, userID)
	if err != nil {
		return err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		availability, err := u.availabilityRepo.FindForUpdate(ctx, availabilityID)
		if err != nil {
			return err
		}
		if availability == nil {
			return apperror.NotFound("availability not found")
		}
		if availability.PractitionerID != practitioner.ID {
			return apperror.Forbidden("availability belongs to another practitioner")
		}

		booked, err := u.availabilityRepo.HasAppointments(ctx, availability.ID)
		if err != nil {
			return err
		}
		if booked {
			return apperror.Conflict("availability has appointments")
		}

		if _, err := u.availabilityRepo.Delete(ctx, availability.ID); err != nil {
			return err
		}
		return u.auditService.LogDelete(ctx, &userID, entity.AuditActionAvailabilityDelete, "availability", availability.ID.String(),
			map[string]interface{}{"day_of_week": availability.DayOfWeek, "week_number": availability.WeekNumber})
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindPersistence || apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to delete availability %s: %+v", availabilityID, err)
		}
		return err
	}
	return nil
}

func (u *availabilityUsecase) practitioner(ctx context.Context, userID uuid.UUID) (*entity.Practitioner, error) {
	practitioner, err := u.practitionerRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner by user ID: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}
	return practitioner, nil
}
