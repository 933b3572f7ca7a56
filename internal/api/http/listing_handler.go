package http

import (
	"net/http"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/utils"

	"github.com/gorilla/mux"
)

type amenity struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (s *Server) listingPage(items []domain.AnnotatedListing, total int32, f domain.ListingFilter) page[domain.AnnotatedListing] {
	pageNum, size := utils.NormalizePage(f.Page, f.PageSize, s.opts.DefaultPageSize, s.opts.MaxPageSize)
	return newPage(items, total, pageNum, size)
}

// searchListings is the public browse endpoint. Only ACTIVE listings are
// visible here whatever the query asks for.
func (s *Server) searchListings(w http.ResponseWriter, r *http.Request) {
	f, err := listingFilterFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	f.Status = domain.ListingStatusActive
	f.OwnerID = r.URL.Query().Get("owner")

	listings, total, err := s.svc.Listings.Search(r.Context(), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.listingPage(listings, total, f))
}

func (s *Server) myListings(w http.ResponseWriter, r *http.Request) {
	f, err := listingFilterFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	listings, total, err := s.svc.Listings.ListMine(r.Context(), IdentityFromContext(r.Context()), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.listingPage(listings, total, f))
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.svc.Listings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeError(w, err)
		return
	}
	listing, err := s.svc.Listings.Create(r.Context(), IdentityFromContext(r.Context()), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) updateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeError(w, err)
		return
	}
	listing, err := s.svc.Listings.Update(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) deleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Listings.Delete(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) setListingStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	err := s.svc.Listings.SetStatus(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"], domain.ListingStatus(req.Status))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listAmenities(w http.ResponseWriter, r *http.Request) {
	vocab := s.svc.Listings.Amenities()
	out := make([]amenity, 0, len(vocab))
	for _, key := range domain.AmenityKeys() {
		if label, ok := vocab[key]; ok {
			out = append(out, amenity{Key: key, Label: label})
		}
	}
	writeJSON(w, http.StatusOK, out)
}
