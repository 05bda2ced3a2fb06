package handlers

import (
	"net/http"

	"github.com/spendwise/backend/internal/services"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns the account's audit trail, newest first
// @Summary List audit logs
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AuditLog
// @Failure 403 {object} services.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		services.WriteError(w, err)
		return
	}

	logs, err := h.service.List(r.Context(), id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
