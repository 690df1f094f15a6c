package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"notblank,max=30"`
	LastName  string `json:"last_name" validate:"notblank,max=30"`
	Age       *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
}

// UpdateProfileRequest patches only the fields that are present.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,notblank,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,notblank,max=30"`
	Age       *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Address   string   `json:"address" validate:"max=255"`
}

type PictureRequest struct {
	PictureURL string `json:"picture_url" validate:"required,url,max=200"`
}

// Response DTOs

type LocationResponse struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address"`
}

type PatientResponse struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Age        *int              `json:"age,omitempty"`
	Location   *LocationResponse `json:"location,omitempty"`
	PictureURL string            `json:"picture_url,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type PractitionerResponse struct {
	ID             uuid.UUID              `json:"id"`
	UserID         uuid.UUID              `json:"user_id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Age            *int                   `json:"age,omitempty"`
	KycStatus      string                 `json:"kyc_status,omitempty"`
	Location       *LocationResponse      `json:"location,omitempty"`
	PictureURL     string                 `json:"picture_url,omitempty"`
	Services       []ServiceResponse      `json:"services"`
	Availabilities []AvailabilityResponse `json:"availabilities,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
