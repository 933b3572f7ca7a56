package domain

import (
	"sort"
	"strings"
	"time"
)

// Amenities is the fixed amenity vocabulary.
var Amenities = map[string]string{
	"wifi":         "WiFi",
	"ac":           "Air Conditioning",
	"parking":      "Parking",
	"laundry":      "Laundry",
	"security":     "24/7 Security",
	"gym":          "Gym",
	"kitchen":      "Kitchen",
	"cleaning":     "Cleaning Service",
	"cctv":         "CCTV",
	"power_backup": "Power Backup",
	"lift":         "Lift",
	"water_supply": "24/7 Water Supply",
}

// AmenityKeys returns the vocabulary sorted by key.
func AmenityKeys() []string {
	keys := make([]string, 0, len(Amenities))
	for k := range Amenities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeAmenities lower-cases, trims and de-duplicates amenity tags,
// keeping first-seen order.
func NormalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// Normalize applies defaults and canonical forms in place.
func (in *ListingInput) Normalize(now time.Time) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Kind = ListingKind(strings.ToUpper(string(in.Kind)))
	if in.Status == "" {
		in.Status = ListingStatusActive
	}
	if in.Rooms == 0 {
		in.Rooms = 1
	}
	if in.Bathrooms == 0 {
		in.Bathrooms = 1
	}
	if in.AvailableFrom == nil {
		t := now
		in.AvailableFrom = &t
	}
	in.Amenities = NormalizeAmenities(in.Amenities)

	rules := make([]string, 0, len(in.Rules))
	for _, r := range in.Rules {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, r)
		}
	}
	in.Rules = rules

	if in.Address.Empty() {
		in.Address = nil
	}

	// The first image is always the main one.
	for i := range in.Images {
		in.Images[i].Position = int32(i)
		in.Images[i].IsMain = i == 0
	}
}

// Validate enforces the listing invariants. It must pass before any write.
func (in *ListingInput) Validate() error {
	if in.Title == "" {
		return Invalid("title is required")
	}
	if in.Description == "" {
		return Invalid("description is required")
	}
	if in.Location == "" {
		return Invalid("location is required")
	}
	if !in.Kind.Valid() {
		return Invalid("kind must be PG or FLAT")
	}
	if !in.Status.Valid() {
		return Invalid("unknown status %q", in.Status)
	}
	if in.Rooms < 0 || in.Bathrooms < 0 {
		return Invalid("room and bathroom counts cannot be negative")
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return Invalid("latitude out of range")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return Invalid("longitude out of range")
	}
	for _, a := range in.Amenities {
		if _, ok := Amenities[a]; !ok {
			return Invalid("unknown amenity %q", a)
		}
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.URL) == "" {
			return Invalid("image url is required")
		}
	}

	switch in.Kind {
	case ListingKindFlat:
		if in.Price == nil || !in.Price.IsPositive() {
			return Invalid("flat listings require a positive monthly price")
		}
		if len(in.Tiers) > 0 {
			return Invalid("flat listings cannot have sharing options")
		}
	case ListingKindPG:
		if in.Price != nil {
			return Invalid("PG listings are priced per sharing option, not at listing level")
		}
		if err := ValidateTiers(in.Tiers); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies validated input onto a listing.
func (in *ListingInput) Apply(l *Listing) {
	l.Title = in.Title
	l.Description = in.Description
	l.Kind = in.Kind
	l.Status = in.Status
	l.Location = in.Location
	l.FormattedAddress = in.FormattedAddress
	l.Address = in.Address
	l.Latitude = in.Latitude
	l.Longitude = in.Longitude
	l.Furnished = in.Furnished
	l.Rooms = in.Rooms
	l.Bathrooms = in.Bathrooms
	l.Amenities = in.Amenities
	l.Rules = in.Rules
	if in.AvailableFrom != nil {
		l.AvailableFrom = *in.AvailableFrom
	}
	l.Price.Valid = false
	if in.Kind == ListingKindFlat && in.Price != nil {
		l.Price.Decimal = *in.Price
		l.Price.Valid = true
	}
	l.Tiers = nil
	if in.Kind == ListingKindPG {
		l.Tiers = append([]SharingTier(nil), in.Tiers...)
	}
	l.Images = append([]Image(nil), in.Images...)
}
