package entity

import (
	"time"

	"github.com/google/uuid"

	"clinic-booking-service/internal/domain/apperror"
)

type PatientLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"patient_id"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientLocation) TableName() string {
	return "patient_locations"
}

func (l *PatientLocation) Validate() error {
	return validateCoordinates(l.Latitude, l.Longitude)
}

type PractitionerLocation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"practitioner_id"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Address        string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PractitionerLocation) TableName() string {
	return "practitioner_locations"
}

func (l *PractitionerLocation) Validate() error {
	return validateCoordinates(l.Latitude, l.Longitude)
}

func validateCoordinates(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return apperror.Validation("latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return apperror.Validation("longitude must be between -180 and 180")
	}
	return nil
}
