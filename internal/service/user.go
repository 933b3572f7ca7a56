package service

import (
	"context"
	"errors"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile changes name, email and phone. Empty values keep the
// current ones.
func (s *userService) UpdateProfile(ctx context.Context, userID, name, email, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if strings.TrimSpace(email) != "" {
		normalized, err := normalizeEmail(email)
		if err != nil {
			return nil, err
		}
		user.Email = normalized
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		user.Phone = phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
