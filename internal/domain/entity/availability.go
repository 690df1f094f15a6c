package entity

import (
	"time"

	"github.com/google/uuid"

	"clinic-booking-service/internal/domain/apperror"
)

// DayOfWeek counts from Monday = 1 to Sunday = 7.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

// WeekNumber is the week within a month. WeekLast also covers days 29-31.
type WeekNumber int

const (
	WeekFirst WeekNumber = iota + 1
	WeekSecond
	WeekThird
	WeekLast
)

func (w WeekNumber) Valid() bool {
	return w >= WeekFirst && w <= WeekLast
}

// DayOfWeekOf converts a calendar date to a DayOfWeek.
func DayOfWeekOf(date time.Time) DayOfWeek {
	if date.Weekday() == time.Sunday {
		return Sunday
	}
	return DayOfWeek(date.Weekday())
}

// WeekNumberOf places a calendar date in its week of the month.
func WeekNumberOf(date time.Time) WeekNumber {
	week := WeekNumber((date.Day()-1)/7 + 1)
	if week > WeekLast {
		return WeekLast
	}
	return week
}

// Availability is a recurring slot a practitioner offers: a weekday within
// a given week of every month.
type Availability struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PractitionerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	DayOfWeek      DayOfWeek  `gorm:"column:day_of_week;not null" json:"day_of_week"`
	WeekNumber     WeekNumber `gorm:"column:week_number;not null" json:"week_number"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:AvailabilityID" json:"-"`
}

func (Availability) TableName() string {
	return "availabilities"
}

func (a *Availability) Validate() error {
	if !a.DayOfWeek.Valid() {
		return apperror.Validation("day_of_week must be between 1 and 7")
	}
	if !a.WeekNumber.Valid() {
		return apperror.Validation("week_number must be between 1 and 4")
	}
	return nil
}

// Matches reports whether date falls on this availability.
func (a *Availability) Matches(date time.Time) bool {
	return DayOfWeekOf(date) == a.DayOfWeek && WeekNumberOf(date) == a.WeekNumber
}
