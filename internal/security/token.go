package security

import (
	"errors"
	"time"

	"rentnest-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeSession TokenType = "session"
	TokenTypeAdmin   TokenType = "admin"
)

const issuer = "rentnest"

// UserClaims carries the identity snapshot a request is authorized with.
type UserClaims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Name   string          `json:"name,omitempty"`
	Phone  string          `json:"phone,omitempty"`
	Role   domain.UserRole `json:"role"`
	Type   TokenType       `json:"type"`
	jwt.RegisteredClaims
}

// Identity converts the claims back to the caller's identity.
func (c *UserClaims) Identity() *domain.Identity {
	return &domain.Identity{
		ID:    c.UserID,
		Email: c.Email,
		Name:  c.Name,
		Phone: c.Phone,
		Role:  c.Role,
	}
}

type TokenManager interface {
	GenerateSessionToken(user *domain.User) (string, error)
	GenerateAdminToken(email string) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret        []byte
	sessionExpiry time.Duration
	adminExpiry   time.Duration
}

func NewTokenManager(secret string, sessionExpiry, adminExpiry time.Duration) TokenManager {
	return &tokenManager{
		secret:        []byte(secret),
		sessionExpiry: sessionExpiry,
		adminExpiry:   adminExpiry,
	}
}

func (m *tokenManager) GenerateSessionToken(u *domain.User) (string, error) {
	claims := UserClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Phone:  u.Phone,
		Role:   u.Role,
		Type:   TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"api-session"},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) GenerateAdminToken(email string) (string, error) {
	claims := UserClaims{
		UserID: "admin",
		Email:  email,
		Name:   "Administrator",
		Role:   domain.UserRoleAdmin,
		Type:   TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.adminExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"api-admin"},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// Admin role is only honoured on admin tokens.
	if (claims.Type == TokenTypeAdmin) != (claims.Role == domain.UserRoleAdmin) {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
