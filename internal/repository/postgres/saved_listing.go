package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"

	"github.com/google/uuid"
)

type savedListingRepository struct {
	db *sql.DB
}

func NewSavedListingRepository(db *sql.DB) repository.SavedListingRepository {
	return &savedListingRepository{db: db}
}

// Save bookmarks a listing. Saving the same listing twice is ErrAlreadySaved.
func (r *savedListingRepository) Save(ctx context.Context, s *domain.SavedListing) error {
	if _, err := uuid.Parse(s.ListingID); err != nil {
		return domain.NotFound("listing")
	}
	s.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_listings (user_id, listing_id, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, listing_id) DO NOTHING`,
		s.UserID, s.ListingID, s.CreatedAt)
	if err != nil {
		return mapError("saved_listing.save", "listing", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError("saved_listing.save", "listing", err)
	}
	if n == 0 {
		return domain.ErrAlreadySaved
	}
	return nil
}

func (r *savedListingRepository) Delete(ctx context.Context, userID, listingID string) error {
	if _, err := uuid.Parse(listingID); err != nil {
		return domain.NotFound("saved listing")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_listings WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return mapError("saved_listing.delete", "saved listing", err)
	}
	return expectRows("saved_listing.delete", "saved listing", res)
}

func (r *savedListingRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	if _, err := uuid.Parse(listingID); err != nil {
		return false, nil
	}
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_listings WHERE user_id = $1 AND listing_id = $2)`, userID, listingID).Scan(&ok)
	if err != nil {
		return false, mapError("saved_listing.exists", "saved listing", err)
	}
	return ok, nil
}

// ListByUser returns the user's bookmarks, most recently saved first.
func (r *savedListingRepository) ListByUser(ctx context.Context, userID string) ([]domain.SavedListing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, listing_id, created_at FROM saved_listings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapError("saved_listing.list", "saved listing", err)
	}
	defer rows.Close()

	saved := []domain.SavedListing{}
	for rows.Next() {
		var s domain.SavedListing
		if err := rows.Scan(&s.UserID, &s.ListingID, &s.CreatedAt); err != nil {
			return nil, mapError("saved_listing.list", "saved listing", err)
		}
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("saved_listing.list", "saved listing", err)
	}
	return saved, nil
}
