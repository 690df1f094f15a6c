package entity

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering shared by many practitioners.
type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practitioners []Practitioner `gorm:"many2many:practitioner_services;" json:"-"`
}

func (Service) TableName() string {
	return "services"
}
