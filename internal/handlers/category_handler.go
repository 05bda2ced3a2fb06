package handlers

import (
	"net/http"

	"github.com/spendwise/backend/internal/services"
)

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create adds an expense category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /category-expenses [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	var req services.CreateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	category, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// List returns the caller's categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category
// @Router /category-expenses [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	categories, err := h.service.List(r.Context(), id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
