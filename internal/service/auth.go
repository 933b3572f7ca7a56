package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"rentnest-backend/internal/config"
	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
	"rentnest-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	ErrAccountBlocked     = fmt.Errorf("%w: account is blocked", domain.ErrForbidden)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", domain.ErrConflict)
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
	admin        config.AdminConfig
	now          func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager, admin config.AdminConfig) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		admin:        admin,
		now:          time.Now,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.Invalid("invalid email address")
	}
	return email, nil
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", domain.Invalid("name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if len(password) < minPasswordLength {
		return nil, "", domain.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if role == "" {
		role = domain.UserRoleSeeker
	}
	if !role.Valid() {
		return nil, "", domain.Invalid("role must be OWNER or SEEKER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokenManager.GenerateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	logger.Info("User signed up", "userID", user.ID, "role", user.Role)
	return user, token, nil
}

func (s *authService) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status == domain.UserStatusBlocked {
		return nil, "", ErrAccountBlocked
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn("Failed to record last login", "userID", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	token, err := s.tokenManager.GenerateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Session re-reads the caller so a blocked or deleted account loses access
// even while its token is still valid.
func (s *authService) Session(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if caller.IsAdmin() {
		return &domain.User{ID: caller.ID, Name: caller.Name, Email: caller.Email, Role: domain.UserRoleAdmin, Status: domain.UserStatusActive}, nil
	}
	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Status == domain.UserStatusBlocked {
		return nil, ErrAccountBlocked
	}
	return user, nil
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if s.admin.Email == "" || !strings.EqualFold(strings.TrimSpace(email), s.admin.Email) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	logger.Info("Admin signed in", "email", s.admin.Email)
	return s.tokenManager.GenerateAdminToken(s.admin.Email)
}
