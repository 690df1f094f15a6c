package handler

import (
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateAvailabilityRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	availability, err := h.availabilityUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to create availability")
		return
	}

	response.Success(w, http.StatusCreated, "Availability created successfully", availability)
}

func (h *AvailabilityHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	availabilities, err := h.availabilityUsecase.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get availabilities")
		return
	}

	response.Success(w, http.StatusOK, "Availabilities retrieved successfully", availabilities)
}

func (h *AvailabilityHandler) ListForPractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID, ok := pathID(w, r, "id", "practitioner")
	if !ok {
		return
	}

	availabilities, err := h.availabilityUsecase.ListForPractitioner(r.Context(), practitionerID)
	if err != nil {
		writeError(w, err, "Failed to get availabilities")
		return
	}

	response.Success(w, http.StatusOK, "Availabilities retrieved successfully", availabilities)
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	availabilityID, ok := pathID(w, r, "id", "availability")
	if !ok {
		return
	}

	if err := h.availabilityUsecase.Delete(r.Context(), userID, availabilityID); err != nil {
		writeError(w, err, "Failed to delete availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability deleted successfully", nil)
}
