// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecuritySession                      // Any signed-in user, admin tokens rejected
	SecurityOwner                        // Signed-in user with role OWNER
	SecurityAdmin                        // Admin token required
	SecuritySessionOrAdmin               // Signed-in user or admin token
)

// EndpointSecurityConfig maps route names to their required security level.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.signup":  SecurityPublic,
	"auth.signin":  SecurityPublic,
	"auth.signout": SecurityPublic,

	// Auth - Session Protected
	"auth.session": SecuritySession,

	// Listings - Public
	"listings.search": SecurityPublic,
	"listings.get":    SecurityPublic,
	"amenities.list":  SecurityPublic,

	// Listings - Owner Protected
	"listings.create": SecurityOwner,
	"listings.update": SecurityOwner,
	"listings.mine":   SecurityOwner,
	"listings.status": SecurityOwner,

	// Listings - Session or Admin (owner or admin checked in service)
	"listings.delete": SecuritySessionOrAdmin,

	// Uploads
	"uploads.create": SecuritySession,
	"uploads.get":    SecurityPublic,
	"health":         SecurityPublic,

	// Inquiries - Session Protected
	"inquiries.create":        SecuritySession,
	"inquiries.mine":          SecuritySession,
	"inquiries.respond":       SecuritySession,

	// Inquiries - Session or Admin (visibility checked in service)
	"inquiries.get":           SecuritySessionOrAdmin,
	"inquiries.update_status": SecuritySessionOrAdmin,

	// Inquiries - Owner Protected
	"inquiries.received": SecurityOwner,

	// Saved listings - Session Protected
	"saved.list":   SecuritySession,
	"saved.add":    SecuritySession,
	"saved.remove": SecuritySession,
	"saved.check":  SecuritySession,

	// Profile - Session Protected
	"profile.get":    SecuritySession,
	"profile.update": SecuritySession,

	// Admin - Public
	"admin.login": SecurityPublic,

	// Admin - Admin Protected
	"admin.users":           SecurityAdmin,
	"admin.user_status":     SecurityAdmin,
	"admin.user_delete":     SecurityAdmin,
	"admin.listings":        SecurityAdmin,
	"admin.listing_status":  SecurityAdmin,
	"admin.listing_delete":  SecurityAdmin,
	"admin.inquiries":       SecurityAdmin,
	"admin.inquiry_get":     SecurityAdmin,
	"admin.inquiry_status":  SecurityAdmin,
	"admin.inquiry_delete":  SecurityAdmin,
	"admin.stats":           SecurityAdmin,
	"admin.recent_activity": SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityAdmin
}
