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

type PatientUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error)
	UpsertLocation(ctx context.Context, userID uuid.UUID, req *dto.LocationRequest) (*dto.PatientResponse, error)
	UpsertPicture(ctx context.Context, userID uuid.UUID, req *dto.PictureRequest) (*dto.PatientResponse, error)
	UploadPicture(ctx context.Context, userID uuid.UUID, file io.Reader, size int64, contentType string) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	pictures     service.PictureStorage
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	pictures service.PictureStorage,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		tx:           tx,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		pictures:     pictures,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*dto.PatientResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	if !user.Role.AllowsPatientProfile() {
		return nil, errProfileRole("patient")
	}

	patient := &entity.Patient{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.patientRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("patient profile already exists")
		}
		if _, err := u.patientRepo.Save(ctx, patient); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return apperror.Conflict("patient profile already exists")
			}
			return err
		}
		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionProfileCreate, "patient", patient.ID.String(),
			converter.PatientToResponse(patient))
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			u.log.Warnf("Failed to create patient profile: %+v", err)
		}
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldValue := converter.PatientToResponse(patient)

	patch := profilePatch(req, &patient.FirstName, &patient.LastName, &patient.Age)
	if len(patch) == 0 {
		return oldValue, nil
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	var updated *entity.Patient
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.patientRepo.Update(ctx, patient.ID, patch); err != nil {
			return err
		}
		updated, err = u.patientRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, &userID, entity.AuditActionProfileUpdate, "patient", patient.ID.String(),
			oldValue, patch)
	})
	if err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(updated), nil
}

func (u *patientUsecase) UpsertLocation(ctx context.Context, userID uuid.UUID, req *dto.LocationRequest) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	location := &entity.PatientLocation{
		PatientID: patient.ID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	if err := u.patientRepo.UpsertLocation(ctx, location); err != nil {
		u.log.Warnf("Failed to upsert patient location: %+v", err)
		return nil, err
	}
	patient.Location = location

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpsertPicture(ctx context.Context, userID uuid.UUID, req *dto.PictureRequest) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.savePicture(ctx, patient, req.PictureURL)
}

// UploadPicture stores the image in object storage and records its URL.
func (u *patientUsecase) UploadPicture(ctx context.Context, userID uuid.UUID, file io.Reader, size int64, contentType string) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := u.pictures.Upload(ctx, patient.ID, file, size, contentType)
	if err != nil {
		if apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to upload patient picture: %+v", err)
		}
		return nil, err
	}
	return u.savePicture(ctx, patient, url)
}

func (u *patientUsecase) savePicture(ctx context.Context, patient *entity.Patient, url string) (*dto.PatientResponse, error) {
	picture := &entity.PatientProfilePicture{PatientID: patient.ID, PictureURL: url}
	if err := u.patientRepo.UpsertPicture(ctx, picture); err != nil {
		u.log.Warnf("Failed to upsert patient picture: %+v", err)
		return nil, err
	}
	patient.ProfilePicture = picture

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) find(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found")
	}
	return patient, nil
}
