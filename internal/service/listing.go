package service

import (
	"context"
	"errors"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
	"rentnest-backend/internal/utils"
)

// ListingOptions are the search defaults applied by the listing service.
type ListingOptions struct {
	PlaceholderImage string
	DefaultPageSize  int32
	MaxPageSize      int32
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	images      ImageStorageService
	opts        ListingOptions
	now         func() time.Time
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository, images ImageStorageService, opts ListingOptions) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		images:      images,
		opts:        opts,
		now:         time.Now,
	}
}

// requireOwner loads the caller and checks they may publish listings.
func (s *listingService) requireOwner(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	owner, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.UserRoleOwner {
		return nil, domain.ErrForbidden
	}
	return owner, nil
}

func (s *listingService) annotate(l *domain.Listing) *domain.AnnotatedListing {
	a := domain.Annotate(l, s.opts.PlaceholderImage)
	return &a
}

func (s *listingService) Create(ctx context.Context, caller *domain.Identity, in domain.ListingInput) (*domain.AnnotatedListing, error) {
	owner, err := s.requireOwner(ctx, caller)
	if err != nil {
		return nil, err
	}

	in.Normalize(s.now().UTC())
	if err := in.Validate(); err != nil {
		return nil, err
	}

	l := &domain.Listing{OwnerID: owner.ID}
	in.Apply(l)
	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	l.Owner = owner

	logger.Info("Listing created", "listingID", l.ID, "ownerID", owner.ID, "kind", l.Kind)
	return s.annotate(l), nil
}

func (s *listingService) Update(ctx context.Context, caller *domain.Identity, id string, in domain.ListingInput) (*domain.AnnotatedListing, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	logger.EnterMethod("listingService.Update", "listingID", id, "callerID", caller.ID)

	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("listingService.Update", err, "listingID", id)
		return nil, err
	}
	if l.OwnerID != caller.ID {
		logger.ExitMethodWithError("listingService.Update", domain.ErrForbidden, "listingID", id, "ownerID", l.OwnerID)
		return nil, domain.ErrForbidden
	}

	in.Normalize(s.now().UTC())
	if err := in.Validate(); err != nil {
		logger.ExitMethodWithError("listingService.Update", err, "listingID", id)
		return nil, err
	}

	previous := l.Images
	in.Apply(l)
	if err := s.listingRepo.Update(ctx, l); err != nil {
		logger.ExitMethodWithError("listingService.Update", err, "listingID", id)
		return nil, err
	}
	s.removeFiles(ctx, droppedImages(previous, l.Images))

	logger.ExitMethod("listingService.Update", "listingID", l.ID, "tiers", len(l.Tiers), "images", len(l.Images))
	return s.annotate(l), nil
}

// Delete is allowed for the listing owner and administrators.
func (s *listingService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != caller.ID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(ctx, l.Images)

	logger.Info("Listing deleted", "listingID", id, "by", caller.ID)
	return nil
}

func (s *listingService) Get(ctx context.Context, id string) (*domain.AnnotatedListing, error) {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, l.OwnerID)
	switch {
	case err == nil:
		l.Owner = owner
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return s.annotate(l), nil
}

func (s *listingService) Search(ctx context.Context, f domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	logger.EnterMethod("listingService.Search", "ownerID", f.OwnerID, "kind", f.Kind, "status", f.Status, "location", f.Location)

	if f.OwnerID != "" {
		owner, err := s.userRepo.GetByID(ctx, f.OwnerID)
		if err != nil {
			logger.ExitMethodWithError("listingService.Search", err, "ownerID", f.OwnerID)
			return nil, 0, err
		}
		if owner.Role != domain.UserRoleOwner {
			err := domain.NotFound("owner")
			logger.ExitMethodWithError("listingService.Search", err, "ownerID", f.OwnerID, "role", owner.Role)
			return nil, 0, err
		}
	}
	if err := validateFilter(&f); err != nil {
		logger.ExitMethodWithError("listingService.Search", err)
		return nil, 0, err
	}
	f.Page, f.PageSize = utils.NormalizePage(f.Page, f.PageSize, s.opts.DefaultPageSize, s.opts.MaxPageSize)

	listings, total, err := s.listingRepo.Search(ctx, f)
	if err != nil {
		logger.ExitMethodWithError("listingService.Search", err)
		return nil, 0, err
	}

	logger.ExitMethod("listingService.Search", "count", len(listings), "total", total, "page", f.Page)
	return domain.AnnotateAll(listings, s.opts.PlaceholderImage), total, nil
}

func validateFilter(f *domain.ListingFilter) error {
	if f.Kind != "" && f.Kind != domain.ListingKindAll && !f.Kind.Valid() {
		return domain.Invalid("unknown listing type %q", f.Kind)
	}
	if f.Status != "" && !f.Status.Valid() {
		return domain.Invalid("unknown status %q", f.Status)
	}
	if (f.PriceMin != nil && f.PriceMin.IsNegative()) || (f.PriceMax != nil && f.PriceMax.IsNegative()) {
		return domain.Invalid("price bounds cannot be negative")
	}
	if f.PriceMin != nil && f.PriceMax != nil && f.PriceMin.GreaterThan(*f.PriceMax) {
		return domain.Invalid("minimum price is greater than maximum price")
	}
	switch f.Sort {
	case domain.ListingSortNewest, domain.ListingSortPriceAsc, domain.ListingSortPriceDesc:
	default:
		f.Sort = domain.ListingSortNewest
	}
	return nil
}

func (s *listingService) ListMine(ctx context.Context, caller *domain.Identity, f domain.ListingFilter) ([]domain.AnnotatedListing, int32, error) {
	if caller == nil {
		return nil, 0, domain.ErrUnauthorized
	}
	f.OwnerID = caller.ID
	return s.Search(ctx, f)
}

func (s *listingService) SetStatus(ctx context.Context, caller *domain.Identity, id string, status domain.ListingStatus) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if !status.Valid() {
		return domain.Invalid("unknown status %q", status)
	}
	if !caller.IsAdmin() {
		l, err := s.listingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l.OwnerID != caller.ID {
			return domain.ErrForbidden
		}
	}
	return s.listingRepo.SetStatus(ctx, id, status)
}

func (s *listingService) Amenities() map[string]string {
	return domain.Amenities
}

// removeFiles deletes stored files after the rows are gone. Failures only
// leave orphaned files behind, so they are logged and ignored.
func (s *listingService) removeFiles(ctx context.Context, images []domain.Image) {
	if s.images == nil {
		return
	}
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			logger.Warn("Failed to remove image file", "publicID", img.PublicID, "error", err)
		}
	}
}

// droppedImages returns the images in before that after no longer references.
func droppedImages(before, after []domain.Image) []domain.Image {
	kept := make(map[string]bool, len(after))
	for _, img := range after {
		kept[img.PublicID] = true
	}
	var dropped []domain.Image
	for _, img := range before {
		if img.PublicID != "" && !kept[img.PublicID] {
			dropped = append(dropped, img)
		}
	}
	return dropped
}
