package dto

import (
	"time"

	"github.com/google/uuid"
)

// SlotDateLayout is the wire format of appointment dates.
const SlotDateLayout = "2006-01-02"

type CreateAppointmentRequest struct {
	Name           string `json:"name" validate:"notblank,max=80"`
	PractitionerID string `json:"practitioner_id" validate:"required,uuid"`
	ServiceID      string `json:"service_id" validate:"required,uuid"`
	AvailabilityID string `json:"availability_id" validate:"required,uuid"`
	SlotDate       string `json:"slot_date" validate:"required,datetime=2006-01-02"`
}

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PatientID      uuid.UUID `json:"patient_id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ServiceName    string    `json:"service_name,omitempty"`
	AvailabilityID uuid.UUID `json:"availability_id"`
	SlotDate       string    `json:"slot_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type KycResponse struct {
	ID             uuid.UUID `json:"id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type KycListResponse struct {
	Kycs  []KycResponse `json:"kycs"`
	Total int           `json:"total"`
}
