package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"agency-backend/internal/models"
	"agency-backend/internal/services"
	"agency-backend/pkg/utils"
)

type QuotationHandler struct {
	service *services.QuotationService
}

func NewQuotationHandler(service *services.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.service.List())
}

func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, q)
}

func (h *QuotationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q, err := h.service.SetStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, q)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
