package entity

import (
	"time"

	"github.com/google/uuid"
)

// Practitioner owns its KYC record, location, picture, availabilities and
// appointments. Services are shared and only linked through practitioner_services.
type Practitioner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName string    `gorm:"column:first_name;type:varchar(30);not null" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(30);not null" json:"last_name"`
	Age       *int      `gorm:"type:integer" json:"age,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Kyc            *Kyc                        `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"kyc,omitempty"`
	Location       *PractitionerLocation       `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
	ProfilePicture *PractitionerProfilePicture `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"profile_picture,omitempty"`
	Appointments   []Appointment               `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	Availabilities []Availability              `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"availabilities,omitempty"`
	Services       []Service                   `gorm:"many2many:practitioner_services;" json:"services,omitempty"`
}

func (Practitioner) TableName() string {
	return "practitioners"
}

func (p *Practitioner) Validate() error {
	return validatePerson(p.FirstName, p.LastName, p.Age)
}

// OffersService reports whether serviceID is among the preloaded services.
func (p *Practitioner) OffersService(serviceID uuid.UUID) bool {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// PractitionerService is the join row between practitioners and services.
type PractitionerService struct {
	PractitionerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (PractitionerService) TableName() string {
	return "practitioner_services"
}
