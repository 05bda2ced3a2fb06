package handlers

import (
	"net/http"

	"github.com/spendwise/backend/internal/services"
)

type AccountHandler struct {
	service *services.AccountService
}

func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create provisions a new account with its first administrator
// @Summary Create account
// @Description Sign up an organization and its ADMIN user
// @Tags account
// @Accept json
// @Produce json
// @Param request body services.CreateAccountRequest true "Signup request"
// @Success 201 {object} services.CreateAccountResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /account [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
