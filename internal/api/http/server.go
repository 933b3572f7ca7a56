package http

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"
	"rentnest-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	sessionCookie = "session"
	adminCookie   = "admin_session"
)

// Services are the application services the HTTP API is served from.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Listings  service.ListingService
	Inquiries service.InquiryService
	Saved     service.SavedListingService
	Admin     service.AdminService
	Images    service.ImageStorageService
}

type Options struct {
	// Production hides store error details from responses and marks cookies Secure.
	Production bool

	SessionTTL     time.Duration
	AdminTTL       time.Duration
	MaxUploadBytes int64

	// Listing page sizes, echoed back in paged responses.
	DefaultPageSize int32
	MaxPageSize     int32

	// ImageStore serves uploaded files under storage.PublicPath. Nil disables it.
	ImageStore storage.ImageStore
}

// Server holds what every handler needs.
type Server struct {
	svc      Services
	tokens   security.TokenManager
	opts     Options
	validate *validator.Validate
}

func NewServer(svc Services, tokens security.TokenManager, opts Options) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation details.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		svc:      svc,
		tokens:   tokens,
		opts:     opts,
		validate: v,
	}
}

// Router registers every route under its security name. Routes with a
// literal segment are registered before the {id} routes they would shadow.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.logRequests, s.authenticate)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet).Name("health")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/signup", s.signup).Methods(http.MethodPost).Name("auth.signup")
	api.HandleFunc("/auth/signin", s.signin).Methods(http.MethodPost).Name("auth.signin")
	api.HandleFunc("/auth/signout", s.signout).Methods(http.MethodPost).Name("auth.signout")
	api.HandleFunc("/auth/session", s.session).Methods(http.MethodGet).Name("auth.session")

	api.HandleFunc("/listings", s.searchListings).Methods(http.MethodGet).Name("listings.search")
	api.HandleFunc("/listings", s.createListing).Methods(http.MethodPost).Name("listings.create")
	api.HandleFunc("/listings/mine", s.myListings).Methods(http.MethodGet).Name("listings.mine")
	api.HandleFunc("/listings/{id}", s.getListing).Methods(http.MethodGet).Name("listings.get")
	api.HandleFunc("/listings/{id}", s.updateListing).Methods(http.MethodPut).Name("listings.update")
	api.HandleFunc("/listings/{id}", s.deleteListing).Methods(http.MethodDelete).Name("listings.delete")
	api.HandleFunc("/listings/{id}/status", s.setListingStatus).Methods(http.MethodPatch).Name("listings.status")
	api.HandleFunc("/amenities", s.listAmenities).Methods(http.MethodGet).Name("amenities.list")

	api.HandleFunc("/uploads", s.uploadImage).Methods(http.MethodPost).Name("uploads.create")

	api.HandleFunc("/inquiries", s.createInquiry).Methods(http.MethodPost).Name("inquiries.create")
	api.HandleFunc("/inquiries/mine", s.myInquiries).Methods(http.MethodGet).Name("inquiries.mine")
	api.HandleFunc("/inquiries/received", s.receivedInquiries).Methods(http.MethodGet).Name("inquiries.received")
	api.HandleFunc("/inquiries/{id}", s.getInquiry).Methods(http.MethodGet).Name("inquiries.get")
	api.HandleFunc("/inquiries/{id}/respond", s.respondInquiry).Methods(http.MethodPost).Name("inquiries.respond")
	api.HandleFunc("/inquiries/{id}/status", s.updateInquiryStatus).Methods(http.MethodPatch).Name("inquiries.update_status")

	api.HandleFunc("/saved", s.listSaved).Methods(http.MethodGet).Name("saved.list")
	api.HandleFunc("/saved/{listingId}", s.checkSaved).Methods(http.MethodGet).Name("saved.check")
	api.HandleFunc("/saved/{listingId}", s.addSaved).Methods(http.MethodPost).Name("saved.add")
	api.HandleFunc("/saved/{listingId}", s.removeSaved).Methods(http.MethodDelete).Name("saved.remove")

	api.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet).Name("profile.get")
	api.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPut).Name("profile.update")

	api.HandleFunc("/admin/login", s.adminLogin).Methods(http.MethodPost).Name("admin.login")
	api.HandleFunc("/admin/users", s.adminUsers).Methods(http.MethodGet).Name("admin.users")
	api.HandleFunc("/admin/users/{id}/status", s.adminSetUserStatus).Methods(http.MethodPatch).Name("admin.user_status")
	api.HandleFunc("/admin/users/{id}", s.adminDeleteUser).Methods(http.MethodDelete).Name("admin.user_delete")
	api.HandleFunc("/admin/listings", s.adminListings).Methods(http.MethodGet).Name("admin.listings")
	api.HandleFunc("/admin/listings/{id}/status", s.adminSetListingStatus).Methods(http.MethodPatch).Name("admin.listing_status")
	api.HandleFunc("/admin/listings/{id}", s.adminDeleteListing).Methods(http.MethodDelete).Name("admin.listing_delete")
	api.HandleFunc("/admin/inquiries", s.adminInquiries).Methods(http.MethodGet).Name("admin.inquiries")
	api.HandleFunc("/admin/inquiries/{id}", s.adminGetInquiry).Methods(http.MethodGet).Name("admin.inquiry_get")
	api.HandleFunc("/admin/inquiries/{id}/status", s.adminSetInquiryStatus).Methods(http.MethodPatch).Name("admin.inquiry_status")
	api.HandleFunc("/admin/inquiries/{id}", s.adminDeleteInquiry).Methods(http.MethodDelete).Name("admin.inquiry_delete")
	api.HandleFunc("/admin/stats", s.adminStats).Methods(http.MethodGet).Name("admin.stats")
	api.HandleFunc("/admin/activity", s.adminRecentActivity).Methods(http.MethodGet).Name("admin.recent_activity")

	if s.opts.ImageStore != nil {
		RegisterImageRoutes(r, s.opts.ImageStore)
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
