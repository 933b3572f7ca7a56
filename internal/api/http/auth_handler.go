package http

import (
	"net/http"
	"time"

	"rentnest-backend/internal/domain"
)

func (s *Server) setTokenCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	user, token, err := s.svc.Auth.Signup(r.Context(), req.Name, req.Email, req.Phone, req.Password, domain.UserRole(req.Role))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.setTokenCookie(w, sessionCookie, token, s.opts.SessionTTL)
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	user, token, err := s.svc.Auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.setTokenCookie(w, sessionCookie, token, s.opts.SessionTTL)
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) signout(w http.ResponseWriter, r *http.Request) {
	s.clearTokenCookie(w, sessionCookie)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Auth.Session(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*domain.User{"user": user})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Users.GetProfile(r.Context(), IdentityFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	user, err := s.svc.Users.UpdateProfile(r.Context(), IdentityFromContext(r.Context()).ID, req.Name, req.Email, req.Phone)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
