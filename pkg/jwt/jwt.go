package jwt

import (
	"errors"
	"fmt"
	"time"

	"clinic-booking-service/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported signing algorithm")
	ErrEmptyToken           = errors.New("jwt: signer produced an empty token")
	ErrInvalidToken         = errors.New("jwt: invalid token")
	ErrWrongTokenType       = errors.New("jwt: unexpected token type")
)

// Claims carries email and role only on access tokens. Refresh tokens
// identify the user by subject alone.
type Claims struct {
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type JWTService struct {
	config config.JWTConfig
	method jwt.SigningMethod
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
	return &JWTService{config: cfg, method: method, now: time.Now}, nil
}

// GenerateAccessToken returns the signed token and its id.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, string, error) {
	return s.sign(userID, AccessToken, email, role, s.config.AccessExpiry)
}

// GenerateRefreshToken returns the signed token and its id.
func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	return s.sign(userID, RefreshToken, "", "", s.config.RefreshExpiry)
}

func (s *JWTService) sign(userID uuid.UUID, tokenType TokenType, email, role string, ttl time.Duration) (string, string, error) {
	now := s.now()
	tokenID := uuid.New().String()
	claims := Claims{
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signedToken, err := jwt.NewWithClaims(s.method, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}
	if signedToken == "" {
		return "", "", ErrEmptyToken
	}

	return signedToken, tokenID, nil
}

// ValidateToken checks signature, algorithm, issuer, expiry and token type.
func (s *JWTService) ValidateToken(tokenString string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
