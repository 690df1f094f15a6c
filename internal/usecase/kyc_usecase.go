package usecase

import (
	"context"
	"errors"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/metrics"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type KycUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID) (*dto.KycResponse, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*dto.KycResponse, error)
	Approve(ctx context.Context, practitionerID uuid.UUID) (*dto.KycResponse, error)
	Reject(ctx context.Context, practitionerID uuid.UUID) (*dto.KycResponse, error)
	ListByStatus(ctx context.Context, status string) (*dto.KycListResponse, error)
}

type kycUsecase struct {
	log              *logrus.Logger
	tx               repository.Transactor
	kycRepo          repository.KycRepository
	practitionerRepo repository.PractitionerRepository
	auditService     service.AuditService
	events           service.EventPublisher
	metrics          *metrics.Metrics
}

func NewKycUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	kycRepo repository.KycRepository,
	practitionerRepo repository.PractitionerRepository,
	auditService service.AuditService,
	events service.EventPublisher,
	m *metrics.Metrics,
) KycUsecase {
	return &kycUsecase{
		log:              log,
		tx:               tx,
		kycRepo:          kycRepo,
		practitionerRepo: practitionerRepo,
		auditService:     auditService,
		events:           events,
		metrics:          m,
	}
}

// Submit opens a pending verification. A rejected record is replaced by a
// fresh one; pending and approved records block resubmission.
func (u *kycUsecase) Submit(ctx context.Context, userID uuid.UUID) (*dto.KycResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	practitioner, err := u.practitionerRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner by user ID: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}

	kyc := &entity.Kyc{PractitionerID: practitioner.ID, Status: entity.KycStatusPending}
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.kycRepo.FindByPractitionerID(ctx, practitioner.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			if !existing.CanResubmit() {
				return apperror.Conflict("kyc already " + string(existing.Status))
			}
			if _, err := u.kycRepo.Delete(ctx, existing.ID); err != nil {
				return err
			}
		}

		if _, err := u.kycRepo.Save(ctx, kyc); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return apperror.Conflict("kyc already submitted")
			}
			return err
		}

		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionKycSubmit, "kyc", kyc.ID.String(),
			map[string]interface{}{"practitioner_id": practitioner.ID, "status": kyc.Status})
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			u.log.Warnf("Failed to submit kyc: %+v", err)
		}
		return nil, err
	}

	response := converter.KycToResponse(kyc)
	if err := u.events.Publish(ctx, service.EventKycSubmitted, response); err != nil {
		u.log.Warnf("Failed to publish %s: %+v", service.EventKycSubmitted, err)
	}
	return response, nil
}

func (u *kycUsecase) GetMine(ctx context.Context, userID uuid.UUID) (*dto.KycResponse, error) {
	practitioner, err := u.practitionerRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner by user ID: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}

	kyc, err := u.kycRepo.FindByPractitionerID(ctx, practitioner.ID)
	if err != nil {
		u.log.Warnf("Failed to find kyc: %+v", err)
		return nil, err
	}
	if kyc == nil {
		return nil, apperror.NotFound("kyc not found")
	}
	return converter.KycToResponse(kyc), nil
}

func (u *kycUsecase) Approve(ctx context.Context, practitionerID uuid.UUID) (*dto.KycResponse, error) {
	return u.decide(ctx, practitionerID, entity.KycStatusApproved, entity.AuditActionKycApprove, service.EventKycApproved)
}

func (u *kycUsecase) Reject(ctx context.Context, practitionerID uuid.UUID) (*dto.KycResponse, error) {
	return u.decide(ctx, practitionerID, entity.KycStatusRejected, entity.AuditActionKycReject, service.EventKycRejected)
}

func (u *kycUsecase) decide(ctx context.Context, practitionerID uuid.UUID, to entity.KycStatus, action, event string) (*dto.KycResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var kyc *entity.Kyc
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		found, err := u.kycRepo.FindByPractitionerID(ctx, practitionerID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NotFound("kyc not found")
		}

		from := found.Status
		if err := found.Decide(to); err != nil {
			return err
		}

		affected, err := u.kycRepo.TransitionStatus(ctx, practitionerID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperror.InvalidState("kyc was decided by another request")
		}

		kyc, err = u.kycRepo.FindByPractitionerID(ctx, practitionerID)
		if err != nil {
			return err
		}
		if kyc == nil {
			return apperror.NotFound("kyc not found")
		}
		// Decisions come from the admin key, not a user account.
		return u.auditService.LogUpdate(ctx, nil, action, "kyc", found.ID.String(),
			map[string]interface{}{"status": from}, map[string]interface{}{"status": to})
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindPersistence || apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to decide kyc for practitioner %s: %+v", practitionerID, err)
		}
		return nil, err
	}

	u.metrics.IncrementKycDecisions(string(to))
	response := converter.KycToResponse(kyc)
	if err := u.events.Publish(ctx, event, response); err != nil {
		u.log.Warnf("Failed to publish %s: %+v", event, err)
	}
	return response, nil
}

func (u *kycUsecase) ListByStatus(ctx context.Context, status string) (*dto.KycListResponse, error) {
	kycStatus := entity.KycStatusPending
	if status != "" {
		kycStatus = entity.KycStatus(status)
	}
	if !kycStatus.Valid() {
		return nil, apperror.Validation("status must be one of pending, approved, rejected")
	}

	kycs, err := u.kycRepo.FindByStatus(ctx, kycStatus)
	if err != nil {
		u.log.Warnf("Failed to list kyc by status %s: %+v", kycStatus, err)
		return nil, err
	}
	return converter.KycsToResponse(kycs), nil
}
