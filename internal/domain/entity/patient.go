package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the aggregate root for everything a patient exclusively owns:
// picture, location and appointments go with it.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName string    `gorm:"column:first_name;type:varchar(30);not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(30);not null" json:"last_name"`
	Age       *int      `gorm:"type:integer" json:"age,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	ProfilePicture *PatientProfilePicture `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"profile_picture,omitempty"`
	Location       *PatientLocation       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
	Appointments   []Appointment          `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) Validate() error {
	return validatePerson(p.FirstName, p.LastName, p.Age)
}
