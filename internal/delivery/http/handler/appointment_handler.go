package handler

import (
	"context"
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book creates an appointment for the calling patient.
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response "slot already booked"
// @Router /patients/me/appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListForPractitioner(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListForPractitioner(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Accept, "Appointment accepted")
}

func (h *AppointmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Reject, "Appointment rejected")
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Complete, "Appointment completed")
}

type transitionFunc func(ctx context.Context, userID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, apply transitionFunc, message string) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := apply(r.Context(), userID, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}
