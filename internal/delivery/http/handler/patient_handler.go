package handler

import (
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to create patient profile")
		return
	}

	response.Success(w, http.StatusCreated, "Patient profile created successfully", patient)
}

func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile updated successfully", patient)
}

func (h *PatientHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LocationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpsertLocation(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to save location")
		return
	}

	response.Success(w, http.StatusOK, "Location saved successfully", patient)
}

func (h *PatientHandler) UpsertPicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.PictureRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpsertPicture(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to save picture")
		return
	}

	response.Success(w, http.StatusOK, "Picture saved successfully", patient)
}

func (h *PatientHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	file, header, ok := readPicture(w, r)
	if !ok {
		return
	}
	defer file.Close()

	patient, err := h.patientUsecase.UploadPicture(r.Context(), userID, file, header.Size, contentTypeOf(header, file))
	if err != nil {
		writeError(w, err, "Failed to upload picture")
		return
	}

	response.Success(w, http.StatusOK, "Picture uploaded successfully", patient)
}
