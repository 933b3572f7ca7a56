package http

import (
	"context"
	"net/http"

	"rentnest-backend/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	token, err := s.svc.Auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.setTokenCookie(w, adminCookie, token, s.opts.AdminTTL)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Admin.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) adminSetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.svc.Admin.SetUserBlocked(r.Context(), mux.Vars(r)["id"], *req.Blocked); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Admin.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// adminListings searches every listing; status is only filtered when asked.
func (s *Server) adminListings(w http.ResponseWriter, r *http.Request) {
	f, err := listingFilterFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	f.OwnerID = r.URL.Query().Get("owner")
	listings, total, err := s.svc.Admin.ListListings(r.Context(), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.listingPage(listings, total, f))
}

func (s *Server) adminSetListingStatus(w http.ResponseWriter, r *http.Request) {
	s.setListingStatus(w, r)
}

func (s *Server) adminDeleteListing(w http.ResponseWriter, r *http.Request) {
	s.deleteListing(w, r)
}

func (s *Server) adminInquiries(w http.ResponseWriter, r *http.Request) {
	s.listInquiries(w, r, func(ctx context.Context, _ *domain.Identity, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
		return s.svc.Inquiries.ListAll(ctx, f)
	})
}

func (s *Server) adminGetInquiry(w http.ResponseWriter, r *http.Request) {
	s.getInquiry(w, r)
}

func (s *Server) adminSetInquiryStatus(w http.ResponseWriter, r *http.Request) {
	s.updateInquiryStatus(w, r)
}

func (s *Server) adminDeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Inquiries.Delete(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Admin.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) adminRecentActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.svc.Admin.RecentActivity(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if activity == nil {
		activity = []domain.Activity{}
	}
	writeJSON(w, http.StatusOK, activity)
}
