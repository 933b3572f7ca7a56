package domain

import "time"

// SavedListing is a seeker's bookmark. (UserID, ListingID) is unique.
type SavedListing struct {
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
