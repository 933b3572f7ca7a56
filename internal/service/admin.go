package service

import (
	"context"
	"fmt"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

// recentActivityPerKind is how many users, listings and inquiries the
// activity feed shows of each.
const recentActivityPerKind = 5

type adminService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	statsRepo   repository.StatsRepository
	listings    ListingService
	images      ImageStorageService
}

func NewAdminService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	statsRepo repository.StatsRepository,
	listings ListingService,
	images ImageStorageService,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		statsRepo:   statsRepo,
		listings:    listings,
		images:      images,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) SetUserBlocked(ctx context.Context, userID string, blocked bool) error {
	status := domain.UserStatusActive
	if blocked {
		status = domain.UserStatusBlocked
	}
	if err := s.userRepo.SetStatus(ctx, userID, status); err != nil {
		return err
	}
	logger.Info("User status changed", "userID", userID, "status", status)
	return nil
}

// DeleteUser removes the user with everything they own. Image files of
// their listings are removed after the rows.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	images, err := s.ownedImages(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to collect listing images: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	for _, img := range images {
		if img.PublicID == "" || s.images == nil {
			continue
		}
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			logger.Warn("Failed to remove image file", "publicID", img.PublicID, "error", err)
		}
	}
	logger.Info("User deleted", "userID", userID, "images", len(images))
	return nil
}

func (s *adminService) ownedImages(ctx context.Context, ownerID string) ([]domain.Image, error) {
	const pageSize = 100
	var images []domain.Image
	for page := int32(1); ; page++ {
		listings, total, err := s.listingRepo.Search(ctx, domain.ListingFilter{
			OwnerID:  ownerID,
			Sort:     domain.ListingSortNewest,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
		for _, l := range listings {
			images = append(images, l.Images...)
		}
		if len(listings) == 0 || page*pageSize >= total {
			return images, nil
		}
	}
}

// ListListings searches every listing regardless of status.
func (s *adminService) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	return s.listings.Search(ctx, filter)
}

func (s *adminService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.statsRepo.Dashboard(ctx)
}

func (s *adminService) RecentActivity(ctx context.Context) ([]domain.Activity, error) {
	return s.statsRepo.RecentActivity(ctx, recentActivityPerKind)
}
