package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic-booking-service/internal/converter"
	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/apperror"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/metrics"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const activityLimit = 50

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) (bool, error)
}

// TokenService is satisfied by *jwt.JWTService.
type TokenService interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, string, error)
	ValidateToken(tokenString string, expected jwt.TokenType) (*jwt.Claims, error)
	GetAccessExpiry() time.Duration
	GetRefreshExpiry() time.Duration
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, req *dto.LogoutRequest) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	GetActivity(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type authUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	auditRepo    repository.AuditLogRepository
	hasher       PasswordHasher
	tokens       TokenService
	auditService service.AuditService
	metrics      *metrics.Metrics

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditLogRepository,
	hasher PasswordHasher,
	tokens TokenService,
	auditService service.AuditService,
	m *metrics.Metrics,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		tx:           tx,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		hasher:       hasher,
		tokens:       tokens,
		auditService: auditService,
		metrics:      m,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, apperror.Validation("invalid role")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("user already exists")
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, apperror.Persistence("could not hash password", err)
	}

	user := &entity.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.userRepo.Save(ctx, user); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(),
			map[string]interface{}{"email": user.Email, "role": user.Role})
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("user already exists")
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.metrics.IncrementRegistrations()
	u.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		// Spend the same hashing work as a real check.
		_, _ = u.hasher.Verify(req.Password, u.dummy())
		u.metrics.IncrementLogins("not_found")
		return nil, apperror.NotFound("user not found")
	}

	ok, err := u.hasher.Verify(req.Password, user.Password)
	if err != nil {
		u.log.Warnf("Failed to verify password for user %s: %+v", user.ID, err)
		return nil, apperror.Persistence("stored credential is unreadable", err)
	}
	if !ok {
		u.metrics.IncrementLogins("bad_password")
		return nil, apperror.Authentication("invalid password")
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to audit login of %s: %+v", user.ID, err)
	}
	u.metrics.IncrementLogins("success")

	return tokens, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.tokens.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return nil, apperror.Authentication("invalid or expired refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperror.Authentication("invalid or expired refresh token")
	}

	// Revoke first: of two concurrent refreshes with the same token only one
	// sees the session and gets a new pair.
	revoked, err := u.sessionRepo.Revoke(ctx, userID, claims.ID)
	if err != nil {
		u.log.Warnf("Failed to revoke refresh session: %+v", err)
		return nil, apperror.Persistence("could not rotate session", err)
	}
	if !revoked {
		return nil, apperror.Authentication("refresh token has been revoked")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.Authentication("user no longer exists")
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, req *dto.LogoutRequest) error {
	claims, err := u.tokens.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return apperror.Authentication("invalid or expired refresh token")
	}
	owner, err := claims.UserID()
	if err != nil || owner != userID {
		return apperror.Forbidden("refresh token belongs to another user")
	}

	if _, err := u.sessionRepo.Revoke(ctx, userID, claims.ID); err != nil {
		u.log.Warnf("Failed to revoke refresh session: %+v", err)
		return apperror.Persistence("could not revoke session", err)
	}

	if err := u.auditService.LogCreate(ctx, &userID, entity.AuditActionUserLogout, "user", userID.String(), nil); err != nil {
		u.log.Warnf("Failed to audit logout of %s: %+v", userID, err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) GetActivity(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditRepo.FindByUserID(ctx, userID, activityLimit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs of %s: %+v", userID, err)
		return nil, err
	}
	return converter.AuditLogsToResponse(logs), nil
}

// DeleteAccount removes the user; the store cascades to both profiles and
// everything they own. Refresh sessions are revoked after commit.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NotFound("user not found")
		}
		if err := u.auditService.LogDelete(ctx, &userID, entity.AuditActionUserDelete, "user", userID.String(),
			map[string]interface{}{"email": user.Email}); err != nil {
			return err
		}
		_, err = u.userRepo.Delete(ctx, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			u.log.Warnf("Failed to delete user %s: %+v", userID, err)
		}
		return err
	}

	if err := u.sessionRepo.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke sessions of deleted user %s: %+v", userID, err)
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, _, err := u.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil || accessToken == "" {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, apperror.TokenGeneration("could not issue access token", err)
	}

	refreshToken, refreshTokenID, err := u.tokens.GenerateRefreshToken(user.ID)
	if err != nil || refreshToken == "" {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, apperror.TokenGeneration("could not issue refresh token", err)
	}

	if err := u.sessionRepo.Store(ctx, user.ID, refreshTokenID, u.tokens.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh session: %+v", err)
		return nil, apperror.Persistence("could not store session", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.tokens.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) dummy() string {
	u.dummyOnce.Do(func() {
		hash, err := u.hasher.Hash("not-a-real-password")
		if err != nil {
			u.log.Warnf("Failed to prepare dummy hash: %+v", err)
			return
		}
		u.dummyHash = hash
	})
	return u.dummyHash
}
