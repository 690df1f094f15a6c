package usecase

import (
	"context"
	"strings"
	"testing"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, auth AuthUsecase, email, pass, role string) *dto.UserResponse {
	t.Helper()
	user, err := auth.Register(context.Background(), &dto.RegisterRequest{Email: email, Password: pass, Role: role})
	require.NoError(t, err)
	return user
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))

	user := register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	stored, err := store.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))
	assert.Equal(t, entity.RolePatient, stored.Role)
	assert.Contains(t, store.audit.actions(), entity.AuditActionUserRegister)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	_, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "ana@example.com", Password: "other-pass", Role: "practitioner",
	})

	assert.ErrorIs(t, err, apperror.Conflict("user already exists"))
	assert.Equal(t, 1, store.users.count())
}

func TestRegister_UnknownRole(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))

	_, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "ana@example.com", Password: "s3cret-pass", Role: "surgeon",
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Zero(t, store.users.count())
}

func TestLogin_ClaimsCarryEmailAndRole(t *testing.T) {
	store := newFakeStore()
	tokens := testTokens(t)
	auth := newTestAuth(t, store, tokens)
	user := register(t, auth, "doc@example.com", "s3cret-pass", "practitioner")

	pair, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "doc@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := tokens.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, "practitioner", claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)

	refresh, err := tokens.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Email)
	assert.Equal(t, 1, store.sessions.count())
}

func TestLogin_WrongPasswordIssuesNothing(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	pair, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, err, apperror.ErrAuthentication)
	assert.Nil(t, pair)
	assert.Zero(t, store.sessions.count())
}

func TestLogin_UnknownUser(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))

	_, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, apperror.NotFound("user not found"))
}

type emptyAccessTokens struct {
	*jwt.JWTService
}

func (emptyAccessTokens) GenerateAccessToken(uuid.UUID, string, string) (string, string, error) {
	return "", "", nil
}

func TestLogin_EmptyTokenIsGenerationFailure(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, emptyAccessTokens{testTokens(t)})
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	pair, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})

	assert.ErrorIs(t, err, apperror.ErrTokenGeneration)
	assert.Nil(t, pair)
}

func TestRefreshToken_RotatesSession(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")
	ctx := context.Background()

	first, err := auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	second, err := auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, store.sessions.count())

	_, err = auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	pair, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestLogout_RevokesRefreshSession(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	user := register(t, auth, "ana@example.com", "s3cret-pass", "patient")
	ctx := context.Background()

	pair, err := auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user.ID, &dto.LogoutRequest{RefreshToken: pair.RefreshToken}))
	assert.Zero(t, store.sessions.count())

	_, err = auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestLogout_OtherUsersToken(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	register(t, auth, "ana@example.com", "s3cret-pass", "patient")
	ctx := context.Background()

	pair, err := auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	err = auth.Logout(ctx, uuid.New(), &dto.LogoutRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, 1, store.sessions.count())
}

func TestDeleteAccount_RevokesAllSessions(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	user := register(t, auth, "ana@example.com", "s3cret-pass", "patient")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
	}
	require.Equal(t, 2, store.sessions.count())

	require.NoError(t, auth.DeleteAccount(ctx, user.ID))
	assert.Zero(t, store.sessions.count())
	assert.Zero(t, store.users.count())

	_, err := auth.GetCurrentUser(ctx, user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetActivity_ListsOwnAuditTrail(t *testing.T) {
	store := newFakeStore()
	auth := newTestAuth(t, store, testTokens(t))
	user := register(t, auth, "ana@example.com", "s3cret-pass", "patient")

	_, err := auth.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	activity, err := auth.GetActivity(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, activity.Total)
	assert.Equal(t, entity.AuditActionUserLogin, activity.Logs[0].Action)
	assert.Equal(t, entity.AuditActionUserRegister, activity.Logs[1].Action)
}
