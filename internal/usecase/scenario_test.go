package usecase

import (
	"context"
	"testing"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_RegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	tokens := testTokens(t)
	auth := newTestAuth(t, store, tokens)
	ctx := context.Background()

	_, err := auth.Register(ctx, &dto.RegisterRequest{Email: "a@x.com", Password: "p1", Role: "patient"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, &dto.RegisterRequest{Email: "a@x.com", Password: "p1", Role: "patient"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)

	pair, err := auth.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "patient", claims.Role)
}

func (s *AppointmentUsecaseSuite) TestScenario_FullLifecycle() {
	created := s.book()
	s.Equal("created", created.Status)

	accepted, err := s.usecase.Accept(s.ctx, s.doctorU, created.ID)
	s.Require().NoError(err)
	s.Equal("accepted", accepted.Status)

	completed, err := s.usecase.Complete(s.ctx, s.doctorU, created.ID)
	s.Require().NoError(err)
	s.Equal("completed", completed.Status)

	_, err = s.usecase.Reject(s.ctx, s.doctorU, created.ID)
	s.ErrorIs(err, apperror.ErrInvalidState)
}
