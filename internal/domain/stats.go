package domain

import "time"

type LocationCount struct {
	Name  string `json:"name"`
	Count int32  `json:"count"`
}

type ListingStats struct {
	TotalListings    int32                 `json:"total_listings"`
	ActiveListings   int32                 `json:"active_listings"`
	ByKind           map[ListingKind]int32 `json:"by_kind"`
	PopularLocations []LocationCount       `json:"popular_locations"`
}

type UserStats struct {
	TotalUsers   int32              `json:"total_users"`
	ByRole       map[UserRole]int32 `json:"by_role"`
	BlockedUsers int32              `json:"blocked_users"`
}

type InquiryStats struct {
	TotalInquiries int32                   `json:"total_inquiries"`
	ByStatus       map[InquiryStatus]int32 `json:"by_status"`
}

type DashboardStats struct {
	Listings  ListingStats `json:"listings"`
	Users     UserStats    `json:"users"`
	Inquiries InquiryStats `json:"inquiries"`
}

// Activity is one entry of the admin recent-activity feed.
type Activity struct {
	Type      string    `json:"type"` // USER, LISTING, INQUIRY
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerInquiryDigest is an owner with inquiries still waiting for an answer.
type OwnerInquiryDigest struct {
	OwnerID      string `json:"owner_id"`
	OwnerName    string `json:"owner_name"`
	OwnerEmail   string `json:"owner_email"`
	PendingCount int32  `json:"pending_count"`
}
