package entity

import (
	"time"

	"github.com/google/uuid"

	"clinic-booking-service/internal/domain/apperror"
)

// AppointmentStatus represents the lifecycle stage of an appointment
type AppointmentStatus string

const (
	AppointmentStatusCreated   AppointmentStatus = "created"
	AppointmentStatusAccepted  AppointmentStatus = "accepted"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusCreated:  {AppointmentStatusAccepted, AppointmentStatusRejected},
	AppointmentStatusAccepted: {AppointmentStatusCompleted},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusCreated, AppointmentStatusAccepted, AppointmentStatusRejected, AppointmentStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// HoldsSlot reports whether an appointment in this status still occupies
// its practitioner's time slot.
func (s AppointmentStatus) HoldsSlot() bool {
	return s != AppointmentStatusRejected
}

// Appointment books one patient into a practitioner's availability on a
// concrete date.
type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"type:varchar(80);not null" json:"name"`
	PatientID      uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	AvailabilityID uuid.UUID `gorm:"type:uuid;not null;index" json:"availability_id"`
	SlotDate       time.Time `gorm:"type:date;not null" json:"slot_date"`
	Active         bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	State        AppointmentState `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"state"`
	Patient      *Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Practitioner *Practitioner    `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Service      *Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Availability *Availability    `gorm:"foreignKey:AvailabilityID" json:"availability,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) Status() AppointmentStatus {
	return a.State.Status
}

// Transition moves the appointment to next or returns an InvalidState error
// naming the current status.
func (a *Appointment) Transition(next AppointmentStatus) error {
	current := a.State.Status
	if !current.CanTransitionTo(next) {
		return apperror.InvalidState("appointment is " + string(current) + ", cannot become " + string(next))
	}
	a.State.Status = next
	a.Active = next.HoldsSlot()
	return nil
}

// AppointmentState holds the single current status of an appointment.
type AppointmentState struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	AppointmentID uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'created'" json:"status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppointmentState) TableName() string {
	return "appointment_states"
}
