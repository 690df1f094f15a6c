package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/pkg/response"
	"clinic-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// StatusFor maps a usecase error to its HTTP status.
func StatusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict, apperror.KindInvalidState:
		return http.StatusConflict
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Server-side failures never
// leak their cause; fallback is shown instead.
func writeError(w http.ResponseWriter, err error, fallback string) {
	writeErrorStatus(w, StatusFor(err), err, fallback)
}

func writeErrorStatus(w http.ResponseWriter, status int, err error, fallback string) {
	switch {
	case status == http.StatusGatewayTimeout:
		response.Fail(w, status, "")
	case status >= http.StatusInternalServerError:
		response.InternalServerError(w, fallback)
	default:
		response.Fail(w, status, apperror.MessageOf(err))
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
	}
	return userID, ok
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
