package http

import (
	"context"
	"net/http"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/service"
	"rentnest-backend/internal/utils"

	"github.com/gorilla/mux"
)

type inquiryLister func(ctx context.Context, caller *domain.Identity, f domain.InquiryFilter) ([]domain.Inquiry, int32, error)

// listInquiries serves the paged inquiry lists, which differ only in the
// service call.
func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request, list inquiryLister) {
	f, err := inquiryFilterFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	inquiries, total, err := list(r.Context(), IdentityFromContext(r.Context()), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	pageNum, size := utils.NormalizePage(f.Page, f.PageSize, service.DefaultInquiryPageSize, service.MaxInquiryPageSize)
	writeJSON(w, http.StatusOK, newPage(inquiries, total, pageNum, size))
}

func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	visitDate, err := utils.ParseDate(req.VisitDate)
	if err != nil {
		s.writeError(w, badRequest("%s", err.Error()))
		return
	}
	inquiry, err := s.svc.Inquiries.Create(r.Context(), IdentityFromContext(r.Context()), domain.NewInquiry{
		ListingID:     req.ListingID,
		Message:       req.Message,
		VisitDate:     visitDate,
		SharingTierID: req.SharingTierID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

func (s *Server) myInquiries(w http.ResponseWriter, r *http.Request) {
	s.listInquiries(w, r, s.svc.Inquiries.ListForSeeker)
}

func (s *Server) receivedInquiries(w http.ResponseWriter, r *http.Request) {
	s.listInquiries(w, r, s.svc.Inquiries.ListForOwner)
}

func (s *Server) getInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := s.svc.Inquiries.Get(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

func (s *Server) respondInquiry(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	inquiry, err := s.svc.Inquiries.Respond(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"], req.Response)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

func (s *Server) updateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	inquiry, err := s.svc.Inquiries.UpdateStatus(r.Context(), IdentityFromContext(r.Context()), mux.Vars(r)["id"], domain.InquiryStatus(req.Status))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}
