package domain

import "time"

type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleSeeker UserRole = "SEEKER"
	// UserRoleAdmin is never stored; it only appears on admin identities.
	UserRoleAdmin UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == UserRoleOwner || r == UserRoleSeeker
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserSummary is a user row with its listing count, as shown to the admin.
type UserSummary struct {
	User
	ListingCount int32 `json:"listing_count"`
}

// Identity is the resolved caller of a request.
type Identity struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Role  UserRole `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == UserRoleAdmin
}
