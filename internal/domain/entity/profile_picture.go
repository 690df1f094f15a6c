package entity

import (
	"time"

	"github.com/google/uuid"
)

type PatientProfilePicture struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"patient_id"`
	PictureURL string    `gorm:"type:varchar(200);not null" json:"picture_url"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientProfilePicture) TableName() string {
	return "patient_profile_pictures"
}

type PractitionerProfilePicture struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"practitioner_id"`
	PictureURL     string    `gorm:"type:varchar(200);not null" json:"picture_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PractitionerProfilePicture) TableName() string {
	return "practitioner_profile_pictures"
}
