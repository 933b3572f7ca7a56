package service

import (
	"context"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
	"rentnest-backend/internal/utils"
)

// Inquiry list paging defaults.
const (
	DefaultInquiryPageSize int32 = 20
	MaxInquiryPageSize     int32 = 100
)

type inquiryService struct {
	inquiryRepo  repository.InquiryRepository
	listingRepo  repository.ListingRepository
	userRepo     repository.UserRepository
	emailService EmailService
	placeholder  string
}

func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	emailService EmailService,
	placeholder string,
) InquiryService {
	return &inquiryService{
		inquiryRepo:  inquiryRepo,
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		emailService: emailService,
		placeholder:  placeholder,
	}
}

func (s *inquiryService) Create(ctx context.Context, caller *domain.Identity, in domain.NewInquiry) (*domain.Inquiry, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	logger.EnterMethod("inquiryService.Create", "listingID", in.ListingID, "callerID", caller.ID)

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.Invalid("message is required")
	}

	listing, err := s.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == caller.ID {
		return nil, domain.ErrSelfInquiry
	}
	if in.SharingTierID != nil {
		if listing.Kind != domain.ListingKindPG {
			return nil, domain.Invalid("sharing option given for a listing without sharing options")
		}
		ok, err := s.listingRepo.TierBelongsTo(ctx, listing.ID, *in.SharingTierID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.Invalid("sharing option does not belong to this listing")
		}
	}

	// Contact details are snapshotted from the stored profile, not the token.
	seeker, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	seekerID := seeker.ID
	q := &domain.Inquiry{
		ListingID:     listing.ID,
		SeekerID:      &seekerID,
		Name:          seeker.Name,
		Email:         seeker.Email,
		Phone:         seeker.Phone,
		Message:       message,
		VisitDate:     in.VisitDate,
		SharingTierID: in.SharingTierID,
		Status:        domain.InquiryStatusPending,
	}
	if err := s.inquiryRepo.Create(ctx, q); err != nil {
		logger.ExitMethodWithError("inquiryService.Create", err, "listingID", listing.ID)
		return nil, err
	}

	if owner, err := s.userRepo.GetByID(ctx, listing.OwnerID); err != nil {
		logger.Warn("Could not load listing owner for notification", "listingID", listing.ID, "error", err)
	} else if err := s.emailService.SendInquiryReceived(ctx, owner.Email, owner.Name, listing.Title, seeker.Name, message); err != nil {
		logger.Error("Failed to send inquiry notification", "inquiryID", q.ID, "error", err)
	}

	logger.ExitMethod("inquiryService.Create", "inquiryID", q.ID, "listingID", listing.ID, "seekerID", seekerID)
	return q, nil
}

// loadForOwner fetches an inquiry the caller must own the listing of.
// Administrators pass too.
func (s *inquiryService) loadForOwner(ctx context.Context, caller *domain.Identity, id string) (*domain.Inquiry, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	q, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && q.Listing.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func (s *inquiryService) Respond(ctx context.Context, caller *domain.Identity, id, response string) (*domain.Inquiry, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.Invalid("response is required")
	}
	q, err := s.loadForOwner(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !q.Status.CanTransition(domain.InquiryStatusResponded) {
		return nil, domain.Invalid("cannot respond to an inquiry that is %s", q.Status)
	}

	q.Status = domain.InquiryStatusResponded
	q.Response = response
	if err := s.inquiryRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	logger.Info("Inquiry responded", "inquiryID", q.ID)

	if err := s.emailService.SendInquiryResponse(ctx, q.Email, q.Name, q.Listing.Title, response); err != nil {
		logger.Error("Failed to send inquiry response", "inquiryID", q.ID, "error", err)
	}
	s.finish(q)
	return q, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, caller *domain.Identity, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if !status.Valid() {
		return nil, domain.Invalid("unknown status %q", status)
	}
	q, err := s.loadForOwner(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !q.Status.CanTransition(status) {
		return nil, domain.Invalid("cannot move inquiry from %s to %s", q.Status, status)
	}

	q.Status = status
	if err := s.inquiryRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	logger.Info("Inquiry status updated", "inquiryID", q.ID, "status", status, "by", caller.ID)
	s.finish(q)
	return q, nil
}

// Get shows an inquiry to the listing owner, the seeker who filed it, or an
// administrator. The seeker sees owner contact details only once the owner
// has engaged.
func (s *inquiryService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Inquiry, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	q, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case caller.IsAdmin(), q.Listing.OwnerID == caller.ID:
	case isSeeker(q, caller):
		q.RedactOwnerContact()
	default:
		return nil, domain.ErrForbidden
	}
	s.finish(q)
	return q, nil
}

func isSeeker(q *domain.Inquiry, caller *domain.Identity) bool {
	if q.SeekerID != nil {
		return *q.SeekerID == caller.ID
	}
	return strings.EqualFold(q.Email, caller.Email)
}

func (s *inquiryService) ListForSeeker(ctx context.Context, caller *domain.Identity, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	if caller == nil {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := normalizeInquiryFilter(&f); err != nil {
		return nil, 0, err
	}
	inquiries, total, err := s.inquiryRepo.ListForSeeker(ctx, caller.ID, caller.Email, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range inquiries {
		inquiries[i].RedactOwnerContact()
		s.finish(&inquiries[i])
	}
	return inquiries, total, nil
}

func (s *inquiryService) ListForOwner(ctx context.Context, caller *domain.Identity, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	if caller == nil {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := normalizeInquiryFilter(&f); err != nil {
		return nil, 0, err
	}
	inquiries, total, err := s.inquiryRepo.ListForOwner(ctx, caller.ID, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range inquiries {
		s.finish(&inquiries[i])
	}
	return inquiries, total, nil
}

func (s *inquiryService) ListAll(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	if err := normalizeInquiryFilter(&f); err != nil {
		return nil, 0, err
	}
	inquiries, total, err := s.inquiryRepo.ListAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range inquiries {
		s.finish(&inquiries[i])
	}
	return inquiries, total, nil
}

func (s *inquiryService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Inquiry deleted", "inquiryID", id)
	return nil
}

// finish fills display defaults on the joined listing summary.
func (s *inquiryService) finish(q *domain.Inquiry) {
	if q.Listing != nil && q.Listing.MainImageURL == "" {
		q.Listing.MainImageURL = domain.MainImageURL(nil, s.placeholder)
	}
}

func normalizeInquiryFilter(f *domain.InquiryFilter) error {
	if f.Status != "" && !f.Status.Valid() {
		return domain.Invalid("unknown status %q", f.Status)
	}
	f.Page, f.PageSize = utils.NormalizePage(f.Page, f.PageSize, DefaultInquiryPageSize, MaxInquiryPageSize)
	return nil
}
