package entity

import (
	"strings"

	"clinic-booking-service/internal/domain/apperror"
)

const maxNameLength = 30

func validatePerson(firstName, lastName string, age *int) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return apperror.Validation("first name and last name are required")
	}
	if len(firstName) > maxNameLength || len(lastName) > maxNameLength {
		return apperror.Validation("names must be at most 30 characters")
	}
	if age != nil && *age < 0 {
		return apperror.Validation("age must not be negative")
	}
	return nil
}
