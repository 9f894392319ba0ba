package handlers

import (
	"net/http"

	"agency-backend/internal/advisor"
	"agency-backend/internal/finance"
	"agency-backend/internal/models"
	"agency-backend/internal/store"
	"agency-backend/pkg/utils"
)

type DashboardHandler struct {
	store   *store.Store
	advisor *advisor.Advisor
}

func NewDashboardHandler(st *store.Store, adv *advisor.Advisor) *DashboardHandler {
	return &DashboardHandler{store: st, advisor: adv}
}

type summaryResponse struct {
	finance.Overview
	USD struct {
		Receipts          float64 `json:"receipts"`
		OperatingExpenses float64 `json:"operatingExpenses"`
		OwnerWithdrawals  float64 `json:"ownerWithdrawals"`
		Balance           float64 `json:"balance"`
	} `json:"usd"`
}

// Summary serves the derived financial overview in IQD with USD equivalents
// at the configured rate. Nothing here is stored; every response is computed
// from the current aggregate.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	data := h.store.Snapshot()
	rate := data.Settings.ExchangeRate

	var resp summaryResponse
	resp.Overview = finance.SummarizeAll(data)
	resp.USD.Receipts = finance.ToUSD(resp.Receipts, models.IQD, rate)
	resp.USD.OperatingExpenses = finance.ToUSD(resp.OperatingExpenses, models.IQD, rate)
	resp.USD.OwnerWithdrawals = finance.ToUSD(resp.OwnerWithdrawals, models.IQD, rate)
	resp.USD.Balance = finance.ToUSD(resp.Balance, models.IQD, rate)
	utils.RespondJSON(w, http.StatusOK, resp)
}

// Advice asks the model for a short recommendation based on the current
// figures. Failures degrade to a static message, never an error response.
func (h *DashboardHandler) Advice(w http.ResponseWriter, r *http.Request) {
	advice := h.advisor.Analyze(r.Context(), h.store.Snapshot())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"advice": advice})
}
