package handler

import (
	"net/http"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"
)

type PractitionerHandler struct {
	practitionerUsecase usecase.PractitionerUsecase
	validator      *validator.CustomValidator
}

func NewPractitionerHandler(practitionerUsecase usecase.PractitionerUsecase, validator *validator.CustomValidator) *PractitionerHandler {
	return &PractitionerHandler{
		practitionerUsecase: practitionerUsecase,
		validator:      validator,
	}
}

func (h *PractitionerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	practitioner, err := h.practitionerUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to create practitioner profile")
		return
	}

	response.Success(w, http.StatusCreated, "Practitioner profile created successfully", practitioner)
}

func (h *PractitionerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	practitioner, err := h.practitionerUsecase.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get practitioner profile")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner profile retrieved successfully", practitioner)
}

func (h *PractitionerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	practitioner, err := h.practitionerUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to update practitioner profile")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner profile updated successfully", practitioner)
}

func (h *PractitionerHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.LocationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	practitioner, err := h.practitionerUsecase.UpsertLocation(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to save location")
		return
	}

	response.Success(w, http.StatusOK, "Location saved successfully", practitioner)
}

func (h *PractitionerHandler) UpsertPicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.PictureRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	practitioner, err := h.practitionerUsecase.UpsertPicture(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to save picture")
		return
	}

	response.Success(w, http.StatusOK, "Picture saved successfully", practitioner)
}

func (h *PractitionerHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	file, header, ok := readPicture(w, r)
	if !ok {
		return
	}
	defer file.Close()

	practitioner, err := h.practitionerUsecase.UploadPicture(r.Context(), userID, file, header.Size, contentTypeOf(header, file))
	if err != nil {
		writeError(w, err, "Failed to upload picture")
		return
	}

	response.Success(w, http.StatusOK, "Picture uploaded successfully", practitioner)
}

// GetPublic shows a practitioner to any signed-in user.
func (h *PractitionerHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	practitionerID, ok := pathID(w, r, "id", "practitioner")
	if !ok {
		return
	}

	practitioner, err := h.practitionerUsecase.GetPublic(r.Context(), practitionerID)
	if err != nil {
		writeError(w, err, "Failed to get practitioner")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner retrieved successfully", practitioner)
}

func (h *PractitionerHandler) AttachService(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	serviceID, ok := pathID(w, r, "serviceId", "service")
	if !ok {
		return
	}

	practitioner, err := h.practitionerUsecase.AttachService(r.Context(), userID, serviceID)
	if err != nil {
		writeError(w, err, "Failed to offer service")
		return
	}

	response.Success(w, http.StatusOK, "Service offered successfully", practitioner)
}

func (h *PractitionerHandler) DetachService(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	serviceID, ok := pathID(w, r, "serviceId", "service")
	if !ok {
		return
	}

	practitioner, err := h.practitionerUsecase.DetachService(r.Context(), userID, serviceID)
	if err != nil {
		writeError(w, err, "Failed to withdraw service")
		return
	}

	response.Success(w, http.StatusOK, "Service withdrawn successfully", practitioner)
}
