package usecase

import (
	"context"
	"errors"
	"io"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PractitionerUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.PractitionerResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.PractitionerResponse, error)
	GetPublic(ctx context.Context, practitionerID uuid.UUID) (*dto.PractitionerResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.PractitionerResponse, error)
	UpsertLocation(ctx context.Context, userID uuid.UUID, req *dto.LocationRequest) (*dto.PractitionerResponse, error)
	UpsertPicture(ctx context.Context, userID uuid.UUID, req *dto.PictureRequest) (*dto.PractitionerResponse, error)
	UploadPicture(ctx context.Context, userID uuid.UUID, file io.Reader, size int64, contentType string) (*dto.PractitionerResponse, error)
	AttachService(ctx context.Context, userID, serviceID uuid.UUID) (*dto.PractitionerResponse, error)
	DetachService(ctx context.Context, userID, serviceID uuid.UUID) (*dto.PractitionerResponse, error)
}

type practitionerUsecase struct {
	log              *logrus.Logger
	tx               repository.Transactor
	userRepo         repository.UserRepository
	practitionerRepo repository.PractitionerRepository
	serviceRepo      repository.ServiceRepository
	pictures         service.PictureStorage
	auditService     service.AuditService
}

func NewPractitionerUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	practitionerRepo repository.PractitionerRepository,
	serviceRepo repository.ServiceRepository,
	pictures service.PictureStorage,
	auditService service.AuditService,
) PractitionerUsecase {
	return &practitionerUsecase{
		log:              log,
		tx:               tx,
		userRepo:         userRepo,
		practitionerRepo: practitionerRepo,
		serviceRepo:      serviceRepo,
		pictures:         pictures,
		auditService:     auditService,
	}
}

func (u *practitionerUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.PractitionerResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	if !user.Role.AllowsPractitionerProfile() {
		return nil, errProfileRole("practitioner")
	}

	practitioner := &entity.Practitioner{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	}
	if err := practitioner.Validate(); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.practitionerRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("practitioner profile already exists")
		}
		if _, err := u.practitionerRepo.Save(ctx, practitioner); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return apperror.Conflict("practitioner profile already exists")
			}
			return err
		}
		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionProfileCreate, "practitioner", practitioner.ID.String(),
			map[string]interface{}{"first_name": practitioner.FirstName, "last_name": practitioner.LastName})
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			u.log.Warnf("Failed to create practitioner profile: %+v", err)
		}
		return nil, err
	}

	return converter.PractitionerToResponse(practitioner), nil
}

func (u *practitionerUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.PractitionerToResponse(practitioner), nil
}

// GetPublic returns a practitioner with services and availabilities, as
// shown to patients choosing a slot.
func (u *practitionerUsecase) GetPublic(ctx context.Context, practitionerID uuid.UUID) (*dto.PractitionerResponse, error) {
	practitioner, err := u.practitionerRepo.FindDetailed(ctx, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", practitionerID, err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}
	return converter.PractitionerToResponse(practitioner), nil
}

func (u *practitionerUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldValue := map[string]interface{}{
		"first_name": practitioner.FirstName,
		"last_name":  practitioner.LastName,
		"age":        practitioner.Age,
	}

	patch := profilePatch(req, &practitioner.FirstName, &practitioner.LastName, &practitioner.Age)
	if len(patch) == 0 {
		return converter.PractitionerToResponse(practitioner), nil
	}
	if err := practitioner.Validate(); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.practitionerRepo.Update(ctx, practitioner.ID, patch); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, &userID, entity.AuditActionProfileUpdate, "practitioner", practitioner.ID.String(),
			oldValue, patch)
	})
	if err != nil {
		u.log.Warnf("Failed to update practitioner profile: %+v", err)
		return nil, err
	}

	return u.Get(ctx, userID)
}

func (u *practitionerUsecase) UpsertLocation(ctx context.Context, userID uuid.UUID, req *dto.LocationRequest) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	location := &entity.PractitionerLocation{
		PractitionerID: practitioner.ID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	if err := u.practitionerRepo.UpsertLocation(ctx, location); err != nil {
		u.log.Warnf("Failed to upsert practitioner location: %+v", err)
		return nil, err
	}
	practitioner.Location = location

	return converter.PractitionerToResponse(practitioner), nil
}

func (u *practitionerUsecase) UpsertPicture(ctx context.Context, userID uuid.UUID, req *dto.PictureRequest) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.savePicture(ctx, practitioner, req.PictureURL)
}

func (u *practitionerUsecase) UploadPicture(ctx context.Context, userID uuid.UUID, file io.Reader, size int64, contentType string) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := u.pictures.Upload(ctx, practitioner.ID, file, size, contentType)
	if err != nil {
		if apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to upload practitioner picture: %+v", err)
		}
		return nil, err
	}
	return u.savePicture(ctx, practitioner, url)
}

func (u *practitionerUsecase) savePicture(ctx context.Context, practitioner *entity.Practitioner, url string) (*dto.PractitionerResponse, error) {
	picture := &entity.PractitionerProfilePicture{PractitionerID: practitioner.ID, PictureURL: url}
	if err := u.practitionerRepo.UpsertPicture(ctx, picture); err != nil {
		u.log.Warnf("Failed to upsert practitioner picture: %+v", err)
		return nil, err
	}
	practitioner.ProfilePicture = picture

	return converter.PractitionerToResponse(practitioner), nil
}

// AttachService adds a catalog service to the practitioner's offer.
// Attaching an already offered service is a no-op.
func (u *practitionerUsecase) AttachService(ctx context.Context, userID, serviceID uuid.UUID) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		svc, err := u.serviceRepo.FindByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return apperror.NotFound("service not found")
		}
		if err := u.practitionerRepo.AttachService(ctx, practitioner.ID, svc.ID); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionServiceAttach, "practitioner_service", practitioner.ID.String(),
			map[string]interface{}{"service_id": svc.ID, "service": svc.Name})
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			u.log.Warnf("Failed to attach service %s: %+v", serviceID, err)
		}
		return nil, err
	}

	return u.Get(ctx, userID)
}

func (u *practitionerUsecase) DetachService(ctx context.Context, userID, serviceID uuid.UUID) (*dto.PractitionerResponse, error) {
	practitioner, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := u.practitionerRepo.DetachService(ctx, practitioner.ID, serviceID)
	if err != nil {
		u.log.Warnf("Failed to detach service %s: %+v", serviceID, err)
		return nil, err
	}
	if !removed {
		return nil, apperror.NotFound("service is not offered by the practitioner")
	}

	return u.Get(ctx, userID)
}

func (u *practitionerUsecase) find(ctx context.Context, userID uuid.UUID) (*entity.Practitioner, error) {
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
