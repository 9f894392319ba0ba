package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"agency-backend/internal/models"
	"agency-backend/internal/services"
	"agency-backend/pkg/utils"
)

type VoucherHandler struct {
	service *services.VoucherService
}

func NewVoucherHandler(service *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

// List serves the ledger; ?category= and ?type= narrow it to one of the views.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	category := models.VoucherCategory(r.URL.Query().Get("category"))
	vouchers := h.service.List(category)
	if vtype := models.VoucherType(r.URL.Query().Get("type")); vtype != "" {
		filtered := make([]models.Voucher, 0, len(vouchers))
		for _, v := range vouchers {
			if v.Type == vtype {
				filtered = append(filtered, v)
			}
		}
		vouchers = filtered
	}
	utils.RespondJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, v)
}

func (h *VoucherHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.service.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, v)
}

func (h *VoucherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Settle folds a freelancer's unpaid items into one payment voucher.
func (h *VoucherHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req models.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.service.Settle(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, v)
}
