package usecase

import (
	"io"
	"testing"
	"time"

	"clinic-booking-service/config"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/pkg/jwt"
	"clinic-booking-service/pkg/password"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testHasher() *password.Hasher {
	return password.NewHasher(password.Params{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func testTokens(t *testing.T) *jwt.JWTService {
	t.Helper()
	tokens, err := jwt.NewJWTService(config.JWTConfig{
		Algorithm:     "HS256",
		Secret:        "usecase-test-secret",
		Issuer:        "clinic-test",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return tokens
}

func newTestAuth(t *testing.T, store *fakeStore, tokens TokenService) AuthUsecase {
	t.Helper()
	log := quietLogger()
	return NewAuthUsecase(log, store.tx, store.users, store.sessions, store.audit,
		testHasher(), tokens, service.NewAuditService(log, store.audit), nil)
}
