package domain

import (
	"github.com/shopspring/decimal"
)

type OccupancyStatus string

const (
	OccupancyFull              OccupancyStatus = "FULL"
	OccupancyEmpty             OccupancyStatus = "EMPTY"
	OccupancyPartiallyOccupied OccupancyStatus = "PARTIALLY_OCCUPIED"
)

// SharingTier is one per-bed pricing bucket of a PG listing, keyed by how
// many persons share a room.
type SharingTier struct {
	ID             string          `json:"id"`
	ListingID      string          `json:"listing_id"`
	PersonsPerRoom int32           `json:"persons_per_room"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	AvailableBeds  int32           `json:"available_beds"`
	TotalBeds      int32           `json:"total_beds"`
}

func (t SharingTier) OccupancyStatus() OccupancyStatus {
	switch {
	case t.AvailableBeds == 0:
		return OccupancyFull
	case t.AvailableBeds == t.TotalBeds:
		return OccupancyEmpty
	default:
		return OccupancyPartiallyOccupied
	}
}

// OccupancyRate is the share of occupied beds, in percent.
func (t SharingTier) OccupancyRate() float64 {
	if t.TotalBeds <= 0 {
		return 0
	}
	return float64(t.TotalBeds-t.AvailableBeds) / float64(t.TotalBeds) * 100
}

func (t SharingTier) validate() error {
	if t.PersonsPerRoom <= 0 {
		return Invalid("persons per room must be positive")
	}
	if !t.PricePerPerson.IsPositive() {
		return Invalid("price per person must be positive for %d-sharing", t.PersonsPerRoom)
	}
	if t.TotalBeds <= 0 {
		return Invalid("total beds must be positive for %d-sharing", t.PersonsPerRoom)
	}
	if t.AvailableBeds < 0 {
		return Invalid("available beds cannot be negative for %d-sharing", t.PersonsPerRoom)
	}
	if t.AvailableBeds > t.TotalBeds {
		return Invalid("available beds (%d) exceed total beds (%d) for %d-sharing", t.AvailableBeds, t.TotalBeds, t.PersonsPerRoom)
	}
	return nil
}

// ValidateTiers checks a full PG tier set. One bad tier rejects the set.
func ValidateTiers(tiers []SharingTier) error {
	if len(tiers) == 0 {
		return Invalid("PG listings must have at least one sharing option")
	}
	seen := make(map[int32]bool, len(tiers))
	for _, t := range tiers {
		if err := t.validate(); err != nil {
			return err
		}
		if seen[t.PersonsPerRoom] {
			return Invalid("duplicate sharing option for %d persons per room", t.PersonsPerRoom)
		}
		seen[t.PersonsPerRoom] = true
	}
	return nil
}

// MinTierPrice returns the cheapest per-person price, or false when there
// are no tiers.
func MinTierPrice(tiers []SharingTier) (decimal.Decimal, bool) {
	if len(tiers) == 0 {
		return decimal.Zero, false
	}
	lowest := tiers[0].PricePerPerson
	for _, t := range tiers[1:] {
		if t.PricePerPerson.LessThan(lowest) {
			lowest = t.PricePerPerson
		}
	}
	return lowest, true
}
