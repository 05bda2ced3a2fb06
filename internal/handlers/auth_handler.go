package handlers

import (
	"log"
	"net/http"

	"github.com/spendwise/backend/internal/middleware"
	"github.com/spendwise/backend/internal/services"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.LoginResponse "Login successful"
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 429 {object} services.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req services.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the bearer token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			services.WriteError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me returns the identity carried by the caller's token
// @Summary Current identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Identity
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}
