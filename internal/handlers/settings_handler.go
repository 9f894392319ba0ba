package handlers

import (
	"encoding/json"
	"net/http"

	"agency-backend/internal/models"
	"agency-backend/internal/services"
	"agency-backend/pkg/utils"
)

type SettingsHandler struct {
	service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.service.Get())
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.AgencySettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := h.service.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, s)
}
