package service_test

import (
	"context"
	"io"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockUserRepo) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.UserSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Listing, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepo) SetStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockListingRepo) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingRepo) TierBelongsTo(ctx context.Context, listingID, tierID string) (bool, error) {
	args := m.Called(ctx, listingID, tierID)
	return args.Bool(0), args.Error(1)
}
func (m *MockListingRepo) SyncOccupancyStatus(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockInquiryRepo
type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}
func (m *MockInquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}
func (m *MockInquiryRepo) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}
func (m *MockInquiryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInquiryRepo) ListForSeeker(ctx context.Context, seekerID, email string, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, seekerID, email, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryRepo) ListForOwner(ctx context.Context, ownerID string, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryRepo) ListAll(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}
func (m *MockInquiryRepo) PendingByOwner(ctx context.Context, olderThan time.Time) ([]domain.OwnerInquiryDigest, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.OwnerInquiryDigest), args.Error(1)
}

// MockSavedListingRepo
type MockSavedListingRepo struct {
	mock.Mock
}

func (m *MockSavedListingRepo) Save(ctx context.Context, saved *domain.SavedListing) error {
	args := m.Called(ctx, saved)
	return args.Error(0)
}
func (m *MockSavedListingRepo) Delete(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}
func (m *MockSavedListingRepo) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSavedListingRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedListing, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SavedListing), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockStatsRepo) RecentActivity(ctx context.Context, perKind int) ([]domain.Activity, error) {
	args := m.Called(ctx, perKind)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInquiryReceived(ctx context.Context, ownerEmail, ownerName, listingTitle, seekerName, message string) error {
	args := m.Called(ctx, ownerEmail, ownerName, listingTitle, seekerName, message)
	return args.Error(0)
}
func (m *MockEmailService) SendInquiryResponse(ctx context.Context, seekerEmail, seekerName, listingTitle, response string) error {
	args := m.Called(ctx, seekerEmail, seekerName, listingTitle, response)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingInquiryDigest(ctx context.Context, ownerEmail, ownerName string, pending int32) error {
	args := m.Called(ctx, ownerEmail, ownerName, pending)
	return args.Error(0)
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

// MockImageStore is the storage backend beneath the image service.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, key string, reader io.Reader) (string, error) {
	args := m.Called(ctx, key, reader)
	if reader != nil {
		_, _ = io.Copy(io.Discard, reader)
	}
	return args.String(0), args.Error(1)
}
func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockImageStore) Open(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
