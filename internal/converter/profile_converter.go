package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:        patient.ID,
		UserID:    patient.UserID,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Age:       patient.Age,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
	if patient.Location != nil {
		response.Location = &dto.LocationResponse{
			Latitude:  patient.Location.Latitude,
			Longitude: patient.Location.Longitude,
			Address:   patient.Location.Address,
		}
	}
	if patient.ProfilePicture != nil {
		response.PictureURL = patient.ProfilePicture.PictureURL
	}
	return response
}

func PractitionerToResponse(practitioner *entity.Practitioner) *dto.PractitionerResponse {
	if practitioner == nil {
		return nil
	}

	response := &dto.PractitionerResponse{
		ID:        practitioner.ID,
		UserID:    practitioner.UserID,
		FirstName: practitioner.FirstName,
		LastName:  practitioner.LastName,
		Age:       practitioner.Age,
		Services:  ServicesToResponses(practitioner.Services),
		CreatedAt: practitioner.CreatedAt,
		UpdatedAt: practitioner.UpdatedAt,
	}
	if practitioner.Kyc != nil {
		response.KycStatus = string(practitioner.Kyc.Status)
	}
	if practitioner.Location != nil {
		response.Location = &dto.LocationResponse{
			Latitude:  practitioner.Location.Latitude,
			Longitude: practitioner.Location.Longitude,
			Address:   practitioner.Location.Address,
		}
	}
	if practitioner.ProfilePicture != nil {
		response.PictureURL = practitioner.ProfilePicture.PictureURL
	}
	if len(practitioner.Availabilities) > 0 {
		response.Availabilities = AvailabilitiesToResponses(practitioner.Availabilities)
	}
	return response
}
