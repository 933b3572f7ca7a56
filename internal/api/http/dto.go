package http

import (
	"net/http"
	"strconv"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=OWNER SEEKER"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type profileRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

type addressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type tierRequest struct {
	PersonsPerRoom int32           `json:"persons_per_room" validate:"gt=0"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	AvailableBeds  int32           `json:"available_beds" validate:"gte=0"`
	TotalBeds      int32           `json:"total_beds" validate:"gt=0"`
}

type imageRequest struct {
	URL      string `json:"url" validate:"required"`
	PublicID string `json:"public_id"`
}

// listingRequest is the create and update body. Business rules are checked
// by the domain; tags only reject malformed input.
type listingRequest struct {
	Title            string           `json:"title" validate:"required,max=200"`
	Description      string           `json:"description" validate:"required"`
	Type             string           `json:"type" validate:"required"`
	Status           string           `json:"status"`
	Location         string           `json:"location" validate:"required"`
	FormattedAddress string           `json:"formatted_address"`
	Address          *addressRequest  `json:"address"`
	Latitude         *float64         `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64         `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Furnished        bool             `json:"furnished"`
	Rooms            int32            `json:"rooms" validate:"gte=0"`
	Bathrooms        int32            `json:"bathrooms" validate:"gte=0"`
	Amenities        []string         `json:"amenities"`
	Rules            []string         `json:"rules"`
	AvailableFrom    string           `json:"available_from"`
	Price            *decimal.Decimal `json:"price"`
	SharingTiers     []tierRequest    `json:"sharing_tiers" validate:"dive"`
	Images           []imageRequest   `json:"images" validate:"dive"`
}

func (req *listingRequest) toInput() (domain.ListingInput, error) {
	availableFrom, err := utils.ParseDate(req.AvailableFrom)
	if err != nil {
		return domain.ListingInput{}, badRequest("%s", err.Error())
	}
	in := domain.ListingInput{
		Title:            req.Title,
		Description:      req.Description,
		Kind:             domain.ListingKind(strings.ToUpper(strings.TrimSpace(req.Type))),
		Status:           domain.ListingStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Location:         req.Location,
		FormattedAddress: strings.TrimSpace(req.FormattedAddress),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Furnished:        req.Furnished,
		Rooms:            req.Rooms,
		Bathrooms:        req.Bathrooms,
		Amenities:        req.Amenities,
		Rules:            req.Rules,
		AvailableFrom:    availableFrom,
		Price:            req.Price,
	}
	if req.Address != nil {
		in.Address = &domain.Address{
			Street:     strings.TrimSpace(req.Address.Street),
			City:       strings.TrimSpace(req.Address.City),
			State:      strings.TrimSpace(req.Address.State),
			PostalCode: strings.TrimSpace(req.Address.PostalCode),
		}
	}
	for _, t := range req.SharingTiers {
		in.Tiers = append(in.Tiers, domain.SharingTier{
			PersonsPerRoom: t.PersonsPerRoom,
			PricePerPerson: t.PricePerPerson,
			AvailableBeds:  t.AvailableBeds,
			TotalBeds:      t.TotalBeds,
		})
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, domain.Image{URL: strings.TrimSpace(img.URL), PublicID: img.PublicID})
	}
	return in, nil
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type blockRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

type inquiryRequest struct {
	ListingID     string  `json:"listing_id" validate:"required"`
	Message       string  `json:"message" validate:"required,max=2000"`
	VisitDate     string  `json:"visit_date"`
	SharingTierID *string `json:"sharing_tier_id" validate:"omitempty,uuid"`
}

type respondRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type page[T any] struct {
	Items      []T   `json:"items"`
	Total      int32 `json:"total"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
	TotalPages int32 `json:"total_pages"`
}

func newPage[T any](items []T, total, pageNum, size int32) page[T] {
	if items == nil {
		items = []T{}
	}
	return page[T]{
		Items:      items,
		Total:      total,
		Page:       pageNum,
		PageSize:   size,
		TotalPages: utils.TotalPages(total, size),
	}
}

func queryInt32(r *http.Request, key string) (int32, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, badRequest("%s must be an integer", key)
	}
	return int32(n), nil
}

func queryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, badRequest("%s must be a number", key)
	}
	return &d, nil
}

// listingFilterFromQuery reads the search parameters. Amenities may be
// repeated or comma separated.
func listingFilterFromQuery(r *http.Request) (domain.ListingFilter, error) {
	q := r.URL.Query()
	f := domain.ListingFilter{
		Kind:     domain.ListingKind(strings.ToUpper(strings.TrimSpace(q.Get("type")))),
		Status:   domain.ListingStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		Location: strings.TrimSpace(q.Get("location")),
		Sort:     domain.ListingSort(strings.ToLower(strings.TrimSpace(q.Get("sort")))),
	}
	switch strings.ToLower(q.Get("furnished")) {
	case "true", "1", "yes":
		f.FurnishedOnly = true
	}
	for _, v := range q["amenities"] {
		f.Amenities = append(f.Amenities, strings.Split(v, ",")...)
	}

	var err error
	if f.PriceMin, err = queryDecimal(r, "minPrice"); err != nil {
		return f, err
	}
	if f.PriceMax, err = queryDecimal(r, "maxPrice"); err != nil {
		return f, err
	}
	if f.Page, err = queryInt32(r, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt32(r, "limit"); err != nil {
		return f, err
	}
	return f, nil
}

func inquiryFilterFromQuery(r *http.Request) (domain.InquiryFilter, error) {
	f := domain.InquiryFilter{
		Status: domain.InquiryStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))),
	}
	var err error
	if f.Page, err = queryInt32(r, "page"); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt32(r, "limit"); err != nil {
		return f, err
	}
	return f, nil
}
