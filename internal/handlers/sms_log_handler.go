package handlers

import (
	"net/http"

	"agency-backend/internal/services"
	"agency-backend/pkg/utils"
)

type SMSLogHandler struct {
	service *services.SMSLogService
}

func NewSMSLogHandler(service *services.SMSLogService) *SMSLogHandler {
	return &SMSLogHandler{service: service}
}

func (h *SMSLogHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.service.List())
}

// Clear wipes the whole log. Admin-only, enforced by the router.
func (h *SMSLogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
