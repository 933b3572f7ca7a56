package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"
	"rentnest-backend/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type harness struct {
	tokens    security.TokenManager
	auth      *MockAuthService
	listings  *MockListingService
	inquiries *MockInquiryService
	saved     *MockSavedListingService
	admin     *MockAdminService
	images    *MockImageStorage
	router    http.Handler
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		tokens:    security.NewTokenManager(testSecret, time.Hour, time.Hour),
		auth:      new(MockAuthService),
		listings:  new(MockListingService),
		inquiries: new(MockInquiryService),
		saved:     new(MockSavedListingService),
		admin:     new(MockAdminService),
		images:    new(MockImageStorage),
	}
	if opts.DefaultPageSize == 0 {
		opts.DefaultPageSize = 12
		opts.MaxPageSize = 50
	}
	srv := NewServer(Services{
		Auth:      h.auth,
		Listings:  h.listings,
		Inquiries: h.inquiries,
		Saved:     h.saved,
		Admin:     h.admin,
		Images:    h.images,
	}, h.tokens, opts)
	h.router = srv.Router()
	return h
}

func (h *harness) sessionToken(t *testing.T, id string, role domain.UserRole) string {
	t.Helper()
	token, err := h.tokens.GenerateSessionToken(&domain.User{ID: id, Email: id + "@example.com", Name: "Test " + id, Role: role})
	require.NoError(t, err)
	return token
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	h := newHarness(t, Options{})
	rec := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSearchListings(t *testing.T) {
	t.Run("ReadsQueryAndForcesActive", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.listings.On("Search", mock.Anything, mock.MatchedBy(func(f domain.ListingFilter) bool {
			return f.Status == domain.ListingStatusActive &&
				f.Kind == domain.ListingKindPG &&
				f.Location == "Koramangala" &&
				f.FurnishedOnly &&
				assert.ObjectsAreEqual([]string{"wifi", "ac", "parking"}, f.Amenities) &&
				f.PriceMin != nil && f.PriceMin.Equal(decimal.NewFromInt(5000)) &&
				f.PriceMax == nil &&
				f.Sort == domain.ListingSortPriceAsc &&
				f.Page == 2 && f.PageSize == 10
		})).Return([]domain.AnnotatedListing{}, int32(25), nil)

		rec := h.do(http.MethodGet, "/api/listings?type=pg&status=INACTIVE&location=Koramangala&furnished=true&amenities=wifi,ac&amenities=parking&minPrice=5000&sort=PRICE_ASC&page=2&limit=10", "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp page[domain.AnnotatedListing]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int32(25), resp.Total)
		assert.Equal(t, int32(2), resp.Page)
		assert.Equal(t, int32(10), resp.PageSize)
		assert.Equal(t, int32(3), resp.TotalPages)
		assert.NotNil(t, resp.Items)
		h.listings.AssertExpectations(t)
	})

	t.Run("PageSizeCapped", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.listings.On("Search", mock.Anything, mock.Anything).Return([]domain.AnnotatedListing(nil), int32(0), nil)

		rec := h.do(http.MethodGet, "/api/listings?limit=500", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"total":0,"page":1,"page_size":50,"total_pages":0}`, rec.Body.String())
	})

	t.Run("MalformedPrice", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodGet, "/api/listings?minPrice=cheap", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Error, "minPrice")
		h.listings.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("InvalidFilterFromService", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.listings.On("Search", mock.Anything, mock.Anything).
			Return([]domain.AnnotatedListing(nil), int32(0), domain.Invalid("minimum price exceeds maximum price"))

		rec := h.do(http.MethodGet, "/api/listings?minPrice=9000&maxPrice=1000", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateListingAccess(t *testing.T) {
	body := map[string]any{
		"title":       "Sunny PG near metro",
		"description": "Clean rooms with meals",
		"type":        "pg",
		"location":    "Koramangala, Bengaluru",
		"amenities":   []string{"wifi"},
		"sharing_tiers": []map[string]any{
			{"persons_per_room": 2, "price_per_person": "7500", "available_beds": 3, "total_beds": 4},
		},
		"images": []map[string]any{{"url": "http://cdn/a.jpg", "public_id": "a.jpg"}},
	}

	t.Run("NoToken", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/listings", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/listings", "not-a-jwt", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("SeekerForbidden", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/listings", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker), body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		h.listings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OwnerCreates", func(t *testing.T) {
		h := newHarness(t, Options{})
		created := &domain.AnnotatedListing{Listing: &domain.Listing{ID: "listing-1", OwnerID: "owner-1", Title: "Sunny PG near metro"}}
		h.listings.On("Create", mock.Anything,
			mock.MatchedBy(func(c *domain.Identity) bool { return c.ID == "owner-1" && c.Role == domain.UserRoleOwner }),
			mock.MatchedBy(func(in domain.ListingInput) bool {
				return in.Kind == domain.ListingKindPG &&
					len(in.Tiers) == 1 &&
					in.Tiers[0].PricePerPerson.Equal(decimal.NewFromInt(7500)) &&
					len(in.Images) == 1 && in.Images[0].PublicID == "a.jpg"
			})).Return(created, nil)

		rec := h.do(http.MethodPost, "/api/listings", h.sessionToken(t, "owner-1", domain.UserRoleOwner), body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"id":"listing-1"`)
		h.listings.AssertExpectations(t)
	})

	t.Run("MissingFieldsReported", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/listings", h.sessionToken(t, "owner-1", domain.UserRoleOwner), map[string]any{"type": "FLAT"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "required", resp.Details["title"])
		assert.Equal(t, "required", resp.Details["location"])
	})

	t.Run("BadAvailableFrom", func(t *testing.T) {
		h := newHarness(t, Options{})
		bad := map[string]any{"title": "t", "description": "d", "type": "FLAT", "location": "x", "available_from": "next week"}
		rec := h.do(http.MethodPost, "/api/listings", h.sessionToken(t, "owner-1", domain.UserRoleOwner), bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("SignupValidationDetails", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "not-an-email", "password": "123", "role": "ADMIN"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "required", resp.Details["name"])
		assert.Equal(t, "email", resp.Details["email"])
		assert.Equal(t, "min", resp.Details["password"])
		assert.Equal(t, "oneof", resp.Details["role"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/auth/signin", "", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SigninSetsCookie", func(t *testing.T) {
		h := newHarness(t, Options{SessionTTL: time.Hour})
		user := &domain.User{ID: "user-1", Email: "ravi@example.com", Role: domain.UserRoleOwner}
		h.auth.On("Signin", mock.Anything, "ravi@example.com", "secret1").Return(user, "tok-123", nil)

		rec := h.do(http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "ravi@example.com", "password": "secret1"})
		require.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessionCookie, cookies[0].Name)
		assert.Equal(t, "tok-123", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("SigninRejected", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.auth.On("Signin", mock.Anything, mock.Anything, mock.Anything).Return(nil, "", service.ErrInvalidCredentials)

		rec := h.do(http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "ravi@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("SessionFromCookie", func(t *testing.T) {
		h := newHarness(t, Options{})
		token := h.sessionToken(t, "user-1", domain.UserRoleSeeker)
		h.auth.On("Session", mock.Anything, mock.MatchedBy(func(c *domain.Identity) bool { return c.ID == "user-1" })).
			Return(&domain.User{ID: "user-1", Role: domain.UserRoleSeeker}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"user-1"`)
	})

	t.Run("SignoutClearsCookie", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/auth/signout", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func TestAdminAccess(t *testing.T) {
	stats := &domain.DashboardStats{}

	t.Run("SessionTokenForbidden", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodGet, "/api/admin/stats", h.sessionToken(t, "owner-1", domain.UserRoleOwner), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminToken", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)
		h.admin.On("Stats", mock.Anything).Return(stats, nil)

		rec := h.do(http.MethodGet, "/api/admin/stats", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AdminCookie", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)
		h.admin.On("ListUsers", mock.Anything).Return([]domain.UserSummary(nil), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.AddCookie(&http.Cookie{Name: adminCookie, Value: token})
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("AdminTokenRejectedOnUserRoutes", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)

		rec := h.do(http.MethodPost, "/api/saved/4b7f6a2e-0f0c-4a57-9d7e-1a2b3c4d5e6f", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec = h.do(http.MethodGet, "/api/inquiries/mine", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		h.saved.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		h.inquiries.AssertNotCalled(t, "ListForSeeker", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AdminTokenOnSharedRoutes", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)
		isAdmin := mock.MatchedBy(func(id *domain.Identity) bool { return id.IsAdmin() })
		h.listings.On("Delete", mock.Anything, isAdmin, "listing-1").Return(nil)
		h.inquiries.On("Get", mock.Anything, isAdmin, "inq-1").Return(&domain.Inquiry{ID: "inq-1"}, nil)

		rec := h.do(http.MethodDelete, "/api/listings/listing-1", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/inquiries/inq-1", nil)
		req.AddCookie(&http.Cookie{Name: adminCookie, Value: token})
		rec = httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		h.listings.AssertExpectations(t)
		h.inquiries.AssertExpectations(t)
	})

	t.Run("LoginSetsAdminCookie", func(t *testing.T) {
		h := newHarness(t, Options{AdminTTL: 8 * time.Hour})
		h.auth.On("AdminLogin", mock.Anything, "admin@rentnest.test", "admin-pass").Return("admin-tok", nil)

		rec := h.do(http.MethodPost, "/api/admin/login", "", map[string]string{"email": "admin@rentnest.test", "password": "admin-pass"})
		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, adminCookie, cookies[0].Name)
	})

	t.Run("BlockRequiresFlag", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)

		rec := h.do(http.MethodPatch, "/api/admin/users/user-1/status", token, map[string]any{})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		h.admin.On("SetUserBlocked", mock.Anything, "user-1", false).Return(nil)
		rec = h.do(http.MethodPatch, "/api/admin/users/user-1/status", token, map[string]any{"blocked": false})
		assert.Equal(t, http.StatusOK, rec.Code)
		h.admin.AssertExpectations(t)
	})

	t.Run("ListingsNotForcedActive", func(t *testing.T) {
		h := newHarness(t, Options{})
		token, err := h.tokens.GenerateAdminToken("admin@rentnest.test")
		require.NoError(t, err)
		h.admin.On("ListListings", mock.Anything, mock.MatchedBy(func(f domain.ListingFilter) bool {
			return f.Status == domain.ListingStatusInactive
		})).Return([]domain.AnnotatedListing{}, int32(0), nil)

		rec := h.do(http.MethodGet, "/api/admin/listings?status=inactive", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		h.admin.AssertExpectations(t)
	})
}

func TestErrorMapping(t *testing.T) {
	storeErr := domain.NewStoreError("get listing", errors.New("connection refused"))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"NotFound", domain.NotFound("listing"), http.StatusNotFound},
		{"Forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"Conflict", domain.ErrConflict, http.StatusConflict},
		{"Validation", domain.Invalid("bad id"), http.StatusBadRequest},
		{"Store", storeErr, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			h.listings.On("Get", mock.Anything, "listing-1").Return(nil, tt.err)
			rec := h.do(http.MethodGet, "/api/listings/listing-1", "", nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	t.Run("CauseHiddenInProduction", func(t *testing.T) {
		h := newHarness(t, Options{Production: true})
		h.listings.On("Get", mock.Anything, "listing-1").Return(nil, storeErr)
		rec := h.do(http.MethodGet, "/api/listings/listing-1", "", nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "internal server error", resp.Error)
		assert.Empty(t, resp.Cause)
	})

	t.Run("CauseShownInDevelopment", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.listings.On("Get", mock.Anything, "listing-1").Return(nil, storeErr)
		rec := h.do(http.MethodGet, "/api/listings/listing-1", "", nil)
		assert.Contains(t, decodeError(t, rec).Cause, "connection refused")
	})

	t.Run("PanicRecovered", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.listings.On("Get", mock.Anything, "listing-1").Run(func(mock.Arguments) { panic("boom") }).Return(nil, nil)
		rec := h.do(http.MethodGet, "/api/listings/listing-1", "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSavedListings(t *testing.T) {
	t.Run("AlreadySaved", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.saved.On("Save", mock.Anything, "seeker-1", "listing-1").Return(domain.ErrAlreadySaved)
		rec := h.do(http.MethodPost, "/api/saved/listing-1", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Check", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.saved.On("IsSaved", mock.Anything, "seeker-1", "listing-1").Return(true, nil)
		rec := h.do(http.MethodGet, "/api/saved/listing-1", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"saved":true}`, rec.Body.String())
	})

	t.Run("RequiresSession", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodGet, "/api/saved", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestInquiryEndpoints(t *testing.T) {
	t.Run("CreatePassesVisitDate", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.inquiries.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(in domain.NewInquiry) bool {
			return in.ListingID == "listing-1" && in.VisitDate != nil && in.VisitDate.Format("2006-01-02") == "2026-11-02"
		})).Return(&domain.Inquiry{ID: "inq-1"}, nil)

		rec := h.do(http.MethodPost, "/api/inquiries", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker),
			map[string]any{"listing_id": "listing-1", "message": "Is it available?", "visit_date": "2026-11-02"})
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		h.inquiries.AssertExpectations(t)
	})

	t.Run("TierMustBeUUID", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodPost, "/api/inquiries", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker),
			map[string]any{"listing_id": "listing-1", "message": "hi", "sharing_tier_id": "tier"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "uuid", decodeError(t, rec).Details["sharing_tier_id"])
	})

	t.Run("SelfInquiry", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.inquiries.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrSelfInquiry)
		rec := h.do(http.MethodPost, "/api/inquiries", h.sessionToken(t, "owner-1", domain.UserRoleOwner),
			map[string]any{"listing_id": "listing-1", "message": "hi"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ReceivedIsOwnerOnly", func(t *testing.T) {
		h := newHarness(t, Options{})
		rec := h.do(http.MethodGet, "/api/inquiries/received", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MinePaged", func(t *testing.T) {
		h := newHarness(t, Options{})
		h.inquiries.On("ListForSeeker", mock.Anything, mock.Anything, mock.MatchedBy(func(f domain.InquiryFilter) bool {
			return f.Status == domain.InquiryStatusPending
		})).Return([]domain.Inquiry{{ID: "inq-1"}}, int32(1), nil)

		rec := h.do(http.MethodGet, "/api/inquiries/mine?status=pending", h.sessionToken(t, "seeker-1", domain.UserRoleSeeker), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp page[domain.Inquiry]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, service.DefaultInquiryPageSize, resp.PageSize)
		assert.Len(t, resp.Items, 1)
	})
}

func TestUploadImage(t *testing.T) {
	multipartBody := func(t *testing.T, field string) (*bytes.Buffer, string) {
		t.Helper()
		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)
		part, err := w.CreateFormFile(field, "room.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\nrest"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return body, w.FormDataContentType()
	}

	t.Run("Uploads", func(t *testing.T) {
		h := newHarness(t, Options{MaxUploadBytes: 1 << 20})
		h.images.On("Upload", mock.Anything, "room.png", mock.Anything, int64(12), mock.Anything).
			Return(&service.UploadedImage{URL: "http://localhost:8080/uploads/images/k.png", PublicID: "k.png"}, nil)

		body, contentType := multipartBody(t, "file")
		req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+h.sessionToken(t, "owner-1", domain.UserRoleOwner))
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"url":"http://localhost:8080/uploads/images/k.png","public_id":"k.png"}`, rec.Body.String())
	})

	t.Run("MissingField", func(t *testing.T) {
		h := newHarness(t, Options{MaxUploadBytes: 1 << 20})
		body, contentType := multipartBody(t, "image")
		req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+h.sessionToken(t, "owner-1", domain.UserRoleOwner))
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		h.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServeImages(t *testing.T) {
	store, err := storage.NewLocalStorage("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "room.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	h := newHarness(t, Options{ImageStore: store})

	t.Run("Found", func(t *testing.T) {
		rec := h.do(http.MethodGet, storage.PublicPath+"room.png", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("Missing", func(t *testing.T) {
		rec := h.do(http.MethodGet, storage.PublicPath+"nope.png", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListAmenitiesSorted(t *testing.T) {
	h := newHarness(t, Options{})
	rec := h.do(http.MethodGet, "/api/amenities", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []amenity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, len(domain.Amenities))
	assert.Equal(t, "ac", out[0].Key)
	assert.Equal(t, "Air Conditioning", out[0].Label)
}
