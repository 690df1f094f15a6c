package handler

import (
	"net/http"

	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/response"
)

type KycHandler struct {
	kycUsecase usecase.KycUsecase
}

func NewKycHandler(kycUsecase usecase.KycUsecase) *KycHandler {
	return &KycHandler{kycUsecase: kycUsecase}
}

func (h *KycHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	kyc, err := h.kycUsecase.Submit(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to submit kyc")
		return
	}

	response.Success(w, http.StatusCreated, "Kyc submitted successfully", kyc)
}

func (h *KycHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	kyc, err := h.kycUsecase.GetMine(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get kyc")
		return
	}

	response.Success(w, http.StatusOK, "Kyc retrieved successfully", kyc)
}

// ListByStatus serves the review queue; status defaults to pending.
func (h *KycHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	kycs, err := h.kycUsecase.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err, "Failed to get kyc list")
		return
	}

	response.Success(w, http.StatusOK, "Kyc list retrieved successfully", kycs)
}

func (h *KycHandler) Approve(w http.ResponseWriter, r *http.Request) {
	practitionerID, ok := pathID(w, r, "practitionerId", "practitioner")
	if !ok {
		return
	}

	kyc, err := h.kycUsecase.Approve(r.Context(), practitionerID)
	if err != nil {
		writeError(w, err, "Failed to approve kyc")
		return
	}

	response.Success(w, http.StatusOK, "Kyc approved", kyc)
}

func (h *KycHandler) Reject(w http.ResponseWriter, r *http.Request) {
	practitionerID, ok := pathID(w, r, "practitionerId", "practitioner")
	if !ok {
		return
	}

	kyc, err := h.kycUsecase.Reject(r.Context(), practitionerID)
	if err != nil {
		writeError(w, err, "Failed to reject kyc")
		return
	}

	response.Success(w, http.StatusOK, "Kyc rejected", kyc)
}
