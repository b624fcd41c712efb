package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondErr(w, r, &auth.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	user, token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{"user": user, "token": token})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondErr(w, r, &auth.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	user, err := s.auth.Register(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, map[string]any{"user": user})
}

type resetRequest struct {
	Email string `json:"email"`
}

// handleResetRequest issues a reset code through the configured sender.
// The code itself never appears in the response.
func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondErr(w, r, &auth.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := s.auth.RequestPasswordReset(req.Email); err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"message": "reset code sent"})
}

type changePasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondErr(w, r, &auth.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := s.auth.ChangePassword(req.Email, req.Code, req.NewPassword); err != nil {
		respondErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"message": "password changed"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.auth.Logout(token)
	respond(w, r, http.StatusOK, map[string]string{"message": "signed out"})
}
