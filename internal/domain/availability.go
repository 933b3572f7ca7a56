package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultPlaceholderImage is used when a listing has no images and no
// placeholder is configured.
const DefaultPlaceholderImage = "/images/placeholder.jpg"

type AnnotatedTier struct {
	SharingTier
	OccupancyStatus OccupancyStatus `json:"occupancy_status"`
	OccupancyRate   float64         `json:"occupancy_rate"`
}

// AnnotatedListing is a listing plus the fields derived for display. None of
// the derived fields are stored.
type AnnotatedListing struct {
	*Listing
	EffectivePrice *decimal.Decimal `json:"effective_price"`
	MainImageURL   string           `json:"main_image_url"`
	FullAddress    string           `json:"full_address"`
	Tiers          []AnnotatedTier  `json:"sharing_tiers"`
	TierCount      *int             `json:"tier_count"`
	TotalBeds      *int32           `json:"total_beds"`
	AvailableBeds  *int32           `json:"available_beds"`
}

// EffectivePrice is the flat price, or the cheapest tier price for PG.
func EffectivePrice(l *Listing) *decimal.Decimal {
	switch l.Kind {
	case ListingKindFlat:
		if l.Price.Valid {
			p := l.Price.Decimal
			return &p
		}
	case ListingKindPG:
		if p, ok := MinTierPrice(l.Tiers); ok {
			return &p
		}
	}
	return nil
}

// MainImageURL picks the flagged main image, then the first image, then the
// placeholder.
func MainImageURL(images []Image, placeholder string) string {
	for _, img := range images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	if placeholder == "" {
		return DefaultPlaceholderImage
	}
	return placeholder
}

func FullAddress(l *Listing) string {
	if l.Address.Empty() {
		return l.Location
	}
	a := l.Address
	return fmt.Sprintf("%s, %s, %s - %s", a.Street, a.City, a.State, a.PostalCode)
}

func Annotate(l *Listing, placeholder string) AnnotatedListing {
	out := AnnotatedListing{
		Listing:        l,
		EffectivePrice: EffectivePrice(l),
		MainImageURL:   MainImageURL(l.Images, placeholder),
		FullAddress:    FullAddress(l),
		Tiers:          make([]AnnotatedTier, 0, len(l.Tiers)),
	}
	for _, t := range l.Tiers {
		out.Tiers = append(out.Tiers, AnnotatedTier{
			SharingTier:     t,
			OccupancyStatus: t.OccupancyStatus(),
			OccupancyRate:   t.OccupancyRate(),
		})
	}
	if l.Kind == ListingKindPG {
		var total, available int32
		for _, t := range l.Tiers {
			total += t.TotalBeds
			available += t.AvailableBeds
		}
		count := len(l.Tiers)
		out.TierCount = &count
		out.TotalBeds = &total
		out.AvailableBeds = &available
	}
	return out
}

func AnnotateAll(listings []Listing, placeholder string) []AnnotatedListing {
	out := make([]AnnotatedListing, 0, len(listings))
	for i := range listings {
		out = append(out, Annotate(&listings[i], placeholder))
	}
	return out
}

// FullyOccupied reports whether a PG listing has tiers and no free bed.
func FullyOccupied(tiers []SharingTier) bool {
	if len(tiers) == 0 {
		return false
	}
	for _, t := range tiers {
		if t.AvailableBeds > 0 {
			return false
		}
	}
	return true
}
