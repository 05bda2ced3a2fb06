package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spendwise/backend/internal/services"
)

type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create records an expense
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateExpenseRequest true "Expense"
// @Success 201 {object} models.Expense
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse "category not found"
// @Router /expenses [post]
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	var req services.CreateExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	expense, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// List returns the caller's expenses
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12), requires year"
// @Param day query int false "Day, requires month"
// @Param createdById query string false "Creator user ID"
// @Success 200 {array} models.Expense
// @Failure 400 {object} services.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	query, err := expenseQuery(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	expenses, err := h.service.List(r.Context(), id, query)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Get returns one expense
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 404 {object} services.ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	expense, err := h.service.Get(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Update changes an expense
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body services.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} models.Expense
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse "expense not found or access denied"
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	var req services.UpdateExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.WriteError(w, err)
		return
	}

	expense, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Delete soft-deletes an expense
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 403 {object} services.ErrorResponse "expense not found or access denied"
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	expense, err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Report summarizes spending
// @Summary Expense report
// @Description Top spender, top category and peak day for an optional year/month window
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12), requires year"
// @Success 200 {object} services.Report
// @Failure 400 {object} services.ErrorResponse
// @Router /expenses/reports [get]
func (h *ExpenseHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	query, err := expenseQuery(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	report, err := h.service.Report(r.Context(), id, query)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
