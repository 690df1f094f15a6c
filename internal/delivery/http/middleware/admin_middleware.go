package middleware

import (
	"crypto/subtle"
	"net/http"

	"clinic-booking-service/pkg/response"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards the back-office routes with a shared key.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(AdminKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				response.Unauthorized(w, "Invalid admin key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
