package usecase

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
)

// profilePatch turns the present fields of req into a column patch and
// applies them to the given names so the merged result can be validated.
func profilePatch(req *dto.UpdateProfileRequest, firstName, lastName *string, age **int) map[string]any {
	patch := map[string]any{}
	if req.FirstName != nil {
		patch["first_name"] = *req.FirstName
		*firstName = *req.FirstName
	}
	if req.LastName != nil {
		patch["last_name"] = *req.LastName
		*lastName = *req.LastName
	}
	if req.Age != nil {
		patch["age"] = *req.Age
		*age = req.Age
	}
	return patch
}

func errProfileRole(profile string) error {
	return apperror.Forbidden("role does not allow a " + profile + " profile")
}
