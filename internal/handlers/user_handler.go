package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spendwise/backend/internal/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create adds a user to the caller's account
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateUserRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	var req services.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// List returns the users of the caller's account
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} services.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	users, err := h.service.List(r.Context(), id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns one user of the caller's account
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update changes the given fields of a user
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body services.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	var req services.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	user, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete removes a user of the caller's account
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} services.ErrorResponse "cannot self-delete"
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	user, err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
