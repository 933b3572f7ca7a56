package service

import (
	"context"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type savedListingService struct {
	savedRepo   repository.SavedListingRepository
	listingRepo repository.ListingRepository
	placeholder string
}

func NewSavedListingService(savedRepo repository.SavedListingRepository, listingRepo repository.ListingRepository, placeholder string) SavedListingService {
	return &savedListingService{
		savedRepo:   savedRepo,
		listingRepo: listingRepo,
		placeholder: placeholder,
	}
}

func (s *savedListingService) Save(ctx context.Context, userID, listingID string) error {
	return s.savedRepo.Save(ctx, &domain.SavedListing{UserID: userID, ListingID: listingID})
}

func (s *savedListingService) Unsave(ctx context.Context, userID, listingID string) error {
	return s.savedRepo.Delete(ctx, userID, listingID)
}

// List returns the user's saved listings, most recently saved first.
func (s *savedListingService) List(ctx context.Context, userID string) ([]domain.AnnotatedListing, error) {
	saved, err := s.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(saved))
	for i, sv := range saved {
		ids[i] = sv.ListingID
	}
	listings, err := s.listingRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return domain.AnnotateAll(listings, s.placeholder), nil
}

func (s *savedListingService) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	return s.savedRepo.Exists(ctx, userID, listingID)
}
