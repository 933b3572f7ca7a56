package service

import (
	"context"
	"io"

	"rentnest-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error) // user, session token
	Signin(ctx context.Context, email, password string) (*domain.User, string, error)
	Session(ctx context.Context, caller *domain.Identity) (*domain.User, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email, phone string) (*domain.User, error)
}

type ListingService interface {
	Create(ctx context.Context, caller *domain.Identity, in domain.ListingInput) (*domain.AnnotatedListing, error)
	Update(ctx context.Context, caller *domain.Identity, id string, in domain.ListingInput) (*domain.AnnotatedListing, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
	Get(ctx context.Context, id string) (*domain.AnnotatedListing, error)
	Search(ctx context.Context, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error)
	ListMine(ctx context.Context, caller *domain.Identity, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error)
	SetStatus(ctx context.Context, caller *domain.Identity, id string, status domain.ListingStatus) error
	Amenities() map[string]string
}

type InquiryService interface {
	Create(ctx context.Context, caller *domain.Identity, in domain.NewInquiry) (*domain.Inquiry, error)
	Respond(ctx context.Context, caller *domain.Identity, id, response string) (*domain.Inquiry, error)
	UpdateStatus(ctx context.Context, caller *domain.Identity, id string, status domain.InquiryStatus) (*domain.Inquiry, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Inquiry, error)
	ListForSeeker(ctx context.Context, caller *domain.Identity, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	ListForOwner(ctx context.Context, caller *domain.Identity, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	ListAll(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}

type SavedListingService interface {
	Save(ctx context.Context, userID, listingID string) error
	Unsave(ctx context.Context, userID, listingID string) error
	List(ctx context.Context, userID string) ([]domain.AnnotatedListing, error)
	IsSaved(ctx context.Context, userID, listingID string) (bool, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	SetUserBlocked(ctx context.Context, userID string, blocked bool) error
	DeleteUser(ctx context.Context, userID string) error
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error)
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	RecentActivity(ctx context.Context) ([]domain.Activity, error)
}

// UploadedImage is what the client attaches to a listing after an upload.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type ImageStorageService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

type EmailService interface {
	SendInquiryReceived(ctx context.Context, ownerEmail, ownerName, listingTitle, seekerName, message string) error
	SendInquiryResponse(ctx context.Context, seekerEmail, seekerName, listingTitle, response string) error
	SendPendingInquiryDigest(ctx context.Context, ownerEmail, ownerName string, pending int32) error
}
