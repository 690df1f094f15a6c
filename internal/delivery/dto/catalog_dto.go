package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name string `json:"name" validate:"notblank,max=80"`
}

type ServiceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

type CreateAvailabilityRequest struct {
	DayOfWeek  int `json:"day_of_week" validate:"required,gte=1,lte=7"`
	WeekNumber int `json:"week_number" validate:"required,gte=1,lte=4"`
}

type AvailabilityResponse struct {
	ID             uuid.UUID `json:"id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	DayOfWeek      int       `json:"day_of_week"`
	WeekNumber     int       `json:"week_number"`
	CreatedAt      time.Time `json:"created_at"`
}

type AvailabilityListResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
	Total          int                    `json:"total"`
}
