package postgres

import (
	"database/sql"

	"rentnest-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ListingRepository
	repository.InquiryRepository
	repository.SavedListingRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ListingRepository:      NewListingRepository(db),
		InquiryRepository:      NewInquiryRepository(db),
		SavedListingRepository: NewSavedListingRepository(db),
		StatsRepository:        NewStatsRepository(db),
	}
}
