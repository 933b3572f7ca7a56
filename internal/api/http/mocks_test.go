package http

import (
	"context"
	"io"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error) {
	args := m.Called(ctx, name, email, phone, password, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Session(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, caller *domain.Identity, in domain.ListingInput) (*domain.AnnotatedListing, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnotatedListing), args.Error(1)
}
func (m *MockListingService) Update(ctx context.Context, caller *domain.Identity, id string, in domain.ListingInput) (*domain.AnnotatedListing, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnotatedListing), args.Error(1)
}
func (m *MockListingService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
func (m *MockListingService) Get(ctx context.Context, id string) (*domain.AnnotatedListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnotatedListing), args.Error(1)
}
func (m *MockListingService) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.AnnotatedListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingService) ListMine(ctx context.Context, caller *domain.Identity, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]domain.AnnotatedListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingService) SetStatus(ctx context.Context, caller *domain.Identity, id string, status domain.ListingStatus) error {
	args := m.Called(ctx, caller, id, status)
	return args.Error(0)
}
func (m *MockListingService) Amenities() map[string]string {
	return domain.Amenities
}

// MockInquiryService
type MockInquiryService struct {
	mock.Mock
}

func (m *MockInquiryService) Create(ctx context.Context, caller *domain.Identity, in domain.NewInquiry) (*domain.Inquiry, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryService) Respond(ctx context.Context, caller *domain.Identity, id, response string) (*domain.Inquiry, error) {
	args := m.Called(ctx, caller, id, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryService) UpdateStatus(ctx context.Context, caller *domain.Identity, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	args := m.Called(ctx, caller, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Inquiry, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryService) ListForSeeker(ctx context.Context, caller *domain.Identity, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryService) ListForOwner(ctx context.Context, caller *domain.Identity, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryService) ListAll(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockSavedListingService
type MockSavedListingService struct {
	mock.Mock
}

func (m *MockSavedListingService) Save(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}
func (m *MockSavedListingService) Unsave(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}
func (m *MockSavedListingService) List(ctx context.Context, userID string) ([]domain.AnnotatedListing, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.AnnotatedListing), args.Error(1)
}
func (m *MockSavedListingService) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}
func (m *MockAdminService) SetUserBlocked(ctx context.Context, userID string, blocked bool) error {
	args := m.Called(ctx, userID, blocked)
	return args.Error(0)
}
func (m *MockAdminService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockAdminService) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.AnnotatedListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockAdminService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockAdminService) RecentActivity(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// MockImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, filename, contentType string, size int64, content io.Reader) (*service.UploadedImage, error) {
	args := m.Called(ctx, filename, contentType, size, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadedImage), args.Error(1)
}
func (m *MockImageStorage) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
