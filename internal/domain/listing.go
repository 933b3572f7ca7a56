package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ListingKind string

const (
	ListingKindPG   ListingKind = "PG"
	ListingKindFlat ListingKind = "FLAT"
	// ListingKindAll is a filter value only.
	ListingKindAll ListingKind = "ALL"
)

func (k ListingKind) Valid() bool {
	return k == ListingKindPG || k == ListingKindFlat
}

type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "ACTIVE"
	ListingStatusInactive ListingStatus = "INACTIVE"
	ListingStatusRented   ListingStatus = "RENTED"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusInactive, ListingStatusRented:
		return true
	}
	return false
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func (a *Address) Empty() bool {
	return a == nil || (a.Street == "" && a.City == "" && a.State == "" && a.PostalCode == "")
}

type Listing struct {
	ID               string              `json:"id"`
	OwnerID          string              `json:"owner_id"`
	Owner            *User               `json:"owner,omitempty"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Kind             ListingKind         `json:"kind"`
	Status           ListingStatus       `json:"status"`
	Location         string              `json:"location"`
	FormattedAddress string              `json:"formatted_address,omitempty"`
	Address          *Address            `json:"address,omitempty"`
	Latitude         *float64            `json:"latitude,omitempty"`
	Longitude        *float64            `json:"longitude,omitempty"`
	Furnished        bool                `json:"furnished"`
	Rooms            int32               `json:"rooms"`
	Bathrooms        int32               `json:"bathrooms"`
	Amenities        []string            `json:"amenities"`
	Rules            []string            `json:"rules"`
	AvailableFrom    time.Time           `json:"available_from"`
	Price            decimal.NullDecimal `json:"price"`
	Tiers            []SharingTier       `json:"sharing_tiers"`
	Images           []Image             `json:"images"`
	InquiryCount     int32               `json:"inquiry_count,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type Image struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	IsMain    bool   `json:"is_main"`
	Position  int32  `json:"position"`
}

// ListingInput carries the owner-editable fields of a listing.
type ListingInput struct {
	Title            string
	Description      string
	Kind             ListingKind
	Status           ListingStatus
	Location         string
	FormattedAddress string
	Address          *Address
	Latitude         *float64
	Longitude        *float64
	Furnished        bool
	Rooms            int32
	Bathrooms        int32
	Amenities        []string
	Rules            []string
	AvailableFrom    *time.Time
	Price            *decimal.Decimal
	Tiers            []SharingTier
	Images           []Image
}

type ListingSort string

const (
	ListingSortNewest    ListingSort = "newest"
	ListingSortPriceAsc  ListingSort = "price_asc"
	ListingSortPriceDesc ListingSort = "price_desc"
)

// ListingFilter is the search criteria. Zero values impose no constraint.
type ListingFilter struct {
	OwnerID       string
	Status        ListingStatus
	Kind          ListingKind
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	Location      string
	FurnishedOnly bool
	Amenities     []string
	Sort          ListingSort
	Page          int32
	PageSize      int32
}

// HasPriceBounds reports whether either price bound is set.
func (f ListingFilter) HasPriceBounds() bool {
	return f.PriceMin != nil || f.PriceMax != nil
}
