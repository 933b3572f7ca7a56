package domain

import "time"

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "PENDING"
	InquiryStatusResponded InquiryStatus = "RESPONDED"
	InquiryStatusScheduled InquiryStatus = "SCHEDULED"
	InquiryStatusCompleted InquiryStatus = "COMPLETED"
	InquiryStatusCancelled InquiryStatus = "CANCELLED"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusScheduled,
		InquiryStatusCompleted, InquiryStatusCancelled:
		return true
	}
	return false
}

// SharesOwnerContact reports whether the owner has engaged with the
// inquiry, which is when the seeker gets the owner's phone and email.
func (s InquiryStatus) SharesOwnerContact() bool {
	switch s {
	case InquiryStatusResponded, InquiryStatusScheduled, InquiryStatusCompleted:
		return true
	}
	return false
}

// CanTransition checks a status change requested by an owner or admin.
// Nothing moves back to PENDING; a response is only accepted while the
// inquiry is still open.
func (s InquiryStatus) CanTransition(to InquiryStatus) bool {
	if !to.Valid() || to == InquiryStatusPending {
		return false
	}
	if to == InquiryStatusResponded {
		return s == InquiryStatusPending || s == InquiryStatusResponded
	}
	return true
}

// Inquiry holds a contact snapshot taken when it was filed. SeekerID is nil
// only on rows created before seeker ids were recorded.
type Inquiry struct {
	ID            string        `json:"id"`
	ListingID     string        `json:"listing_id"`
	SeekerID      *string       `json:"seeker_id,omitempty"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Message       string        `json:"message"`
	VisitDate     *time.Time    `json:"visit_date,omitempty"`
	SharingTierID *string       `json:"sharing_tier_id,omitempty"`
	Status        InquiryStatus `json:"status"`
	Response      string        `json:"response,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Listing *InquiryListing `json:"listing,omitempty"`
}

// InquiryListing is the listing summary joined onto an inquiry.
type InquiryListing struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Kind         ListingKind  `json:"kind"`
	Location     string       `json:"location"`
	OwnerID      string       `json:"owner_id"`
	MainImageURL string       `json:"image,omitempty"`
	Owner        InquiryOwner `json:"owner"`
}

type InquiryOwner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// RedactOwnerContact clears owner contact details the seeker may not see yet.
func (q *Inquiry) RedactOwnerContact() {
	if q.Listing == nil || q.Status.SharesOwnerContact() {
		return
	}
	q.Listing.Owner.Email = ""
	q.Listing.Owner.Phone = ""
}

type InquiryFilter struct {
	Status   InquiryStatus
	Page     int32
	PageSize int32
}

type NewInquiry struct {
	ListingID     string
	Message       string
	VisitDate     *time.Time
	SharingTierID *string
}
