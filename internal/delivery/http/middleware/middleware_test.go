package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking-service/config"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT(t *testing.T) *jwt.JWTService {
	t.Helper()
	svc, err := jwt.NewJWTService(config.JWTConfig{
		Algorithm:     "HS256",
		Secret:        "middleware-secret",
		Issuer:        "clinic-test",
		AccessExpiry:  time.Hour,
		RefreshExpiry: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func serve(h http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	tokens := testJWT(t)
	userID := uuid.New()
	access, _, err := tokens.GenerateAccessToken(userID, "doc@example.com", "practitioner")
	require.NoError(t, err)
	refresh, _, err := tokens.GenerateRefreshToken(userID)
	require.NoError(t, err)

	var seen uuid.UUID
	var seenRole entity.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserIDFromContext(r.Context())
		seenRole, _ = GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := NewAuthMiddleware(tokens).Authenticate(next)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Authorization", "Token "+access).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Authorization", "Bearer "+refresh).Code)

	rec := serve(h, "Authorization", "Bearer "+access)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, seen)
	assert.Equal(t, entity.RolePractitioner, seenRole)
}

func TestRequirePatient(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequirePatient(ok)

	cases := map[entity.Role]int{
		entity.RolePatient:      http.StatusNoContent,
		entity.RoleAll:          http.StatusNoContent,
		entity.RolePractitioner: http.StatusForbidden,
	}
	for role, status := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withRole(req, role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code, role)
	}

	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "").Code)
}

func TestRequireAdminKey(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	h := RequireAdminKey("s3cret")(ok)
	assert.Equal(t, http.StatusNoContent, serve(h, AdminKeyHeader, "s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, AdminKeyHeader, "guess").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "").Code)

	open := RequireAdminKey("")(ok)
	assert.Equal(t, http.StatusUnauthorized, serve(open, AdminKeyHeader, "").Code)
}

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	h := RequestTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	serve(h, "", "")
	assert.True(t, hasDeadline)
}

func withRole(r *http.Request, role entity.Role) context.Context {
	return context.WithValue(r.Context(), RoleKey, role)
}
