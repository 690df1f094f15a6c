package converter

import (
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		Name:           appointment.Name,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		ServiceID:      appointment.ServiceID,
		AvailabilityID: appointment.AvailabilityID,
		SlotDate:       appointment.SlotDate.Format(dto.SlotDateLayout),
		Status:         string(appointment.Status()),
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
	if appointment.Service != nil {
		response.ServiceName = appointment.Service.Name
	}
	return response
}

func AppointmentsToResponse(appointments []entity.Appointment) *dto.AppointmentListResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return &dto.AppointmentListResponse{Appointments: responses, Total: len(responses)}
}

func KycToResponse(kyc *entity.Kyc) *dto.KycResponse {
	if kyc == nil {
		return nil
	}
	return &dto.KycResponse{
		ID:             kyc.ID,
		PractitionerID: kyc.PractitionerID,
		Status:         string(kyc.Status),
		CreatedAt:      kyc.CreatedAt,
		UpdatedAt:      kyc.UpdatedAt,
	}
}

func KycsToResponse(kycs []entity.Kyc) *dto.KycListResponse {
	responses := make([]dto.KycResponse, len(kycs))
	for i := range kycs {
		responses[i] = *KycToResponse(&kycs[i])
	}
	return &dto.KycListResponse{Kycs: responses, Total: len(responses)}
}
