package middleware

import (
	"net/http"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, candidate := range allowed {
				if role == candidate {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequirePatient admits the roles that may own a patient profile.
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient, entity.RoleAll)(next)
}

// RequirePractitioner admits the roles that may own a practitioner profile.
func RequirePractitioner(next http.Handler) http.Handler {
	return RequireRole(entity.RolePractitioner, entity.RoleAll)(next)
}
