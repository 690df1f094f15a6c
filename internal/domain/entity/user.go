package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role decides which profiles a user may own.
type Role string

const (
	RolePractitioner Role = "practitioner"
	RolePatient      Role = "patient"
	RoleAll          Role = "all"
)

// ParseRole maps the wire value of a role to a Role.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RolePractitioner, RolePatient, RoleAll:
		return Role(value), true
	default:
		return "", false
	}
}

// AllowsPatientProfile reports whether a user with this role may own a patient profile.
func (r Role) AllowsPatientProfile() bool {
	return r == RolePatient || r == RoleAll
}

// AllowsPractitionerProfile reports whether a user with this role may own a practitioner profile.
func (r Role) AllowsPractitionerProfile() bool {
	return r == RolePractitioner || r == RoleAll
}

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      *Patient      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Practitioner *Practitioner `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"practitioner,omitempty"`
}

func (User) TableName() string {
	return "users"
}
