package repository

import (
	"context"
	"time"

	"rentnest-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetStatus(ctx context.Context, id string, status domain.UserStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.UserSummary, error)
}

// ListingRepository persists listings together with their sharing tiers and
// images. Writes that touch children run in a single transaction.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.ListingStatus) error
	Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error)
	TierBelongsTo(ctx context.Context, listingID, tierID string) (bool, error)

	// SyncOccupancyStatus flips full PG listings to RENTED and re-opens
	// RENTED ones that have a free bed again.
	SyncOccupancyStatus(ctx context.Context) (rented, reopened int64, err error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)
	Update(ctx context.Context, inquiry *domain.Inquiry) error
	Delete(ctx context.Context, id string) error
	ListForSeeker(ctx context.Context, seekerID, email string, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	ListForOwner(ctx context.Context, ownerID string, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	ListAll(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	PendingByOwner(ctx context.Context, olderThan time.Time) ([]domain.OwnerInquiryDigest, error)
}

type SavedListingRepository interface {
	Save(ctx context.Context, saved *domain.SavedListing) error
	Delete(ctx context.Context, userID, listingID string) error
	Exists(ctx context.Context, userID, listingID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SavedListing, error)
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	RecentActivity(ctx context.Context, perKind int) ([]domain.Activity, error)
}
