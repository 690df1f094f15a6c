package usecase

import (
	"context"
	"errors"
	"time"

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

type AppointmentUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForPractitioner(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	Accept(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Reject(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log              *logrus.Logger
	tx               repository.Transactor
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
	serviceRepo      repository.ServiceRepository
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
	events           service.EventPublisher
	metrics          *metrics.Metrics
	now              func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
	serviceRepo repository.ServiceRepository,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
	events service.EventPublisher,
	m *metrics.Metrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:              log,
		tx:               tx,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
		events:           events,
		metrics:          m,
		now:              time.Now,
	}
}

// Create books the slot identified by practitioner, availability and date.
// The availability row is locked for the rest of the transaction, so two
// bookings of the same slot are serialized and the second sees the first.
func (u *appointmentUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	practitionerID, serviceID, availabilityID, err := parseAppointmentRefs(req)
	if err != nil {
		return nil, err
	}
	slotDate, err := time.ParseInLocation(dto.SlotDateLayout, req.SlotDate, time.UTC)
	if err != nil {
		return nil, apperror.Validation("slot_date must be formatted as YYYY-MM-DD")
	}
	if slotDate.Before(today(u.now())) {
		return nil, apperror.Validation("slot_date must not be in the past")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found")
	}

	appointment := &entity.Appointment{
		Name:           req.Name,
		PatientID:      patient.ID,
		PractitionerID: practitionerID,
		ServiceID:      serviceID,
		AvailabilityID: availabilityID,
		SlotDate:       slotDate,
		Active:         true,
		State:          entity.AppointmentState{Status: entity.AppointmentStatusCreated},
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		practitioner, err := u.practitionerRepo.FindByID(ctx, practitionerID)
		if err != nil {
			return err
		}
		if practitioner == nil {
			return apperror.NotFound("practitioner not found")
		}

		svc, err := u.serviceRepo.FindByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return apperror.NotFound("service not found")
		}

		availability, err := u.availabilityRepo.FindForUpdate(ctx, availabilityID)
		if err != nil {
			return err
		}
		if availability == nil {
			return apperror.NotFound("availability not found")
		}
		if availability.PractitionerID != practitioner.ID {
			return apperror.Validation("availability does not belong to the practitioner")
		}

		offered, err := u.practitionerRepo.OffersService(ctx, practitioner.ID, svc.ID)
		if err != nil {
			return err
		}
		if !offered {
			return apperror.Validation("service is not offered by the practitioner")
		}

		if !availability.Matches(slotDate) {
			return apperror.Validation("slot_date does not fall on the availability")
		}

		taken, err := u.appointmentRepo.FindActiveBySlot(ctx, practitioner.ID, availability.ID, slotDate)
		if err != nil {
			return err
		}
		if taken != nil {
			return apperror.Conflict("time slot already booked")
		}

		if _, err := u.appointmentRepo.Save(ctx, appointment); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return apperror.Conflict("time slot already booked")
			}
			return err
		}
		appointment.Service = svc

		return u.auditService.LogCreate(ctx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(),
			map[string]interface{}{
				"practitioner_id": practitioner.ID,
				"availability_id": availability.ID,
				"slot_date":       req.SlotDate,
			})
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			u.metrics.IncrementBookingConflicts()
		} else if apperror.KindOf(err) == apperror.KindPersistence || apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to create appointment: %+v", err)
		}
		return nil, err
	}

	u.metrics.IncrementAppointmentsCreated()
	response := converter.AppointmentToResponse(appointment)
	u.publish(ctx, service.EventAppointmentCreated, response)

	return response, nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patient.ID, err)
		return nil, err
	}
	return converter.AppointmentsToResponse(appointments), nil
}

func (u *appointmentUsecase) ListForPractitioner(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	practitioner, err := u.practitionerRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner by user ID: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NotFound("practitioner not found")
	}

	appointments, err := u.appointmentRepo.FindByPractitionerID(ctx, practitioner.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for practitioner %s: %+v", practitioner.ID, err)
		return nil, err
	}
	return converter.AppointmentsToResponse(appointments), nil
}

func (u *appointmentUsecase) Accept(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, userID, appointmentID, entity.AppointmentStatusAccepted)
}

func (u *appointmentUsecase) Reject(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, userID, appointmentID, entity.AppointmentStatusRejected)
}

func (u *appointmentUsecase) Complete(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, userID, appointmentID, entity.AppointmentStatusCompleted)
}

var transitionAudit = map[entity.AppointmentStatus]struct{ action, event string }{
	entity.AppointmentStatusAccepted:  {entity.AuditActionAppointmentAccept, service.EventAppointmentAccepted},
	entity.AppointmentStatusRejected:  {entity.AuditActionAppointmentReject, service.EventAppointmentRejected},
	entity.AppointmentStatusCompleted: {entity.AuditActionAppointmentComplete, service.EventAppointmentCompleted},
}

// transition applies one state-machine step on behalf of the practitioner
// that owns the appointment. The state row is updated conditionally on its
// previous status; losing a race yields an invalid state error.
func (u *appointmentUsecase) transition(ctx context.Context, userID, appointmentID uuid.UUID, to entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
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

	var appointment *entity.Appointment
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		found, err := u.appointmentRepo.FindWithState(ctx, appointmentID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NotFound("appointment not found")
		}
		if found.PractitionerID != practitioner.ID {
			return apperror.Forbidden("appointment belongs to another practitioner")
		}

		from := found.Status()
		if err := found.Transition(to); err != nil {
			return err
		}

		affected, err := u.appointmentRepo.TransitionStatus(ctx, found.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperror.InvalidState("appointment was changed by another request")
		}

		// Re-read so the response carries the stored timestamps.
		appointment, err = u.appointmentRepo.FindWithState(ctx, found.ID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return apperror.NotFound("appointment not found")
		}
		return u.auditService.LogUpdate(ctx, &userID, transitionAudit[to].action, "appointment", found.ID.String(),
			map[string]interface{}{"status": from}, map[string]interface{}{"status": to})
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindPersistence || apperror.KindOf(err) == "" {
			u.log.Warnf("Failed to move appointment %s to %s: %+v", appointmentID, to, err)
		}
		return nil, err
	}

	u.metrics.IncrementAppointmentTransitions(string(to))
	response := converter.AppointmentToResponse(appointment)
	u.publish(ctx, transitionAudit[to].event, response)

	return response, nil
}

func (u *appointmentUsecase) publish(ctx context.Context, event string, payload interface{}) {
	if err := u.events.Publish(ctx, event, payload); err != nil {
		u.log.Warnf("Failed to publish %s: %+v", event, err)
	}
}

func parseAppointmentRefs(req *dto.CreateAppointmentRequest) (practitionerID, serviceID, availabilityID uuid.UUID, err error) {
	if practitionerID, err = uuid.Parse(req.PractitionerID); err != nil {
		return practitionerID, serviceID, availabilityID, apperror.Validation("practitioner_id must be a valid UUID")
	}
	if serviceID, err = uuid.Parse(req.ServiceID); err != nil {
		return practitionerID, serviceID, availabilityID, apperror.Validation("service_id must be a valid UUID")
	}
	if availabilityID, err = uuid.Parse(req.AvailabilityID); err != nil {
		return practitionerID, serviceID, availabilityID, apperror.Validation("availability_id must be a valid UUID")
	}
	return practitionerID, serviceID, availabilityID, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
