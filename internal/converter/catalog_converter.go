package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}
	return &dto.ServiceResponse{ID: service.ID, Name: service.Name}
}

func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, s := range services {
		responses[i] = dto.ServiceResponse{ID: s.ID, Name: s.Name}
	}
	return responses
}

func AvailabilityToResponse(availability *entity.Availability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}
	return &dto.AvailabilityResponse{
		ID:             availability.ID,
		PractitionerID: availability.PractitionerID,
		DayOfWeek:      int(availability.DayOfWeek),
		WeekNumber:     int(availability.WeekNumber),
		CreatedAt:      availability.CreatedAt,
	}
}

func AvailabilitiesToResponses(availabilities []entity.Availability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(availabilities))
	for i := range availabilities {
		responses[i] = *AvailabilityToResponse(&availabilities[i])
	}
	return responses
}
