package http

import (
	"net/http"

	"rentnest-backend/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) listSaved(w http.ResponseWriter, r *http.Request) {
	listings, err := s.svc.Saved.List(r.Context(), IdentityFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if listings == nil {
		listings = []domain.AnnotatedListing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) addSaved(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Saved.Save(r.Context(), IdentityFromContext(r.Context()).ID, mux.Vars(r)["listingId"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

func (s *Server) removeSaved(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Saved.Unsave(r.Context(), IdentityFromContext(r.Context()).ID, mux.Vars(r)["listingId"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) checkSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := s.svc.Saved.IsSaved(r.Context(), IdentityFromContext(r.Context()).ID, mux.Vars(r)["listingId"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
