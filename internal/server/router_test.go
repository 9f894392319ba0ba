package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-backend/internal/advisor"
	"agency-backend/internal/auth"
	"agency-backend/internal/config"
	"agency-backend/internal/handlers"
	"agency-backend/internal/health"
	"agency-backend/internal/middleware"
	"agency-backend/internal/models"
	"agency-backend/internal/services"
	"agency-backend/internal/sms"
	"agency-backend/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	data := models.Empty()
	data.Users = []models.User{
		{ID: "u-admin", Name: "Admin", Username: "admin", Password: "", Role: models.RoleAdmin},
		{ID: "u-acct", Name: "Accountant", Username: "acct", Password: "", Role: models.RoleAccountant},
	}
	data.Vouchers = []models.Voucher{
		{ID: "v-1", Type: models.VoucherReceipt, Amount: 100, Currency: models.USD, Date: "2026-08-01", PartyName: "c"},
		{ID: "v-2", Type: models.VoucherPayment, Amount: 50000, Currency: models.IQD, Date: "2026-08-02", PartyName: "o", Category: models.CategoryOwnerWithdrawal},
	}
	st := store.New(data, nil)

	session := auth.NewSession(st, nil, auth.NewJWTManager("test-secret", 1, "test"), nil)
	notifier := services.NewNotifier(st, nil, sms.NewMockProvider())

	cfg := &config.Config{}
	router := NewRouter(Deps{
		Config:     cfg,
		Auth:       middleware.NewAuth(session),
		AuthH:      handlers.NewAuthHandler(session, nil),
		Quotations: handlers.NewQuotationHandler(services.NewQuotationService(st, nil, notifier)),
		Vouchers:   handlers.NewVoucherHandler(services.NewVoucherService(st, nil, notifier)),
		Contracts:  handlers.NewContractHandler(services.NewContractService(st, nil)),
		Users:      handlers.NewUserHandler(services.NewUserService(st, nil)),
		Settings:   handlers.NewSettingsHandler(services.NewSettingsService(st, nil)),
		SMSLogs:    handlers.NewSMSLogHandler(services.NewSMSLogService(st, nil)),
		Dashboard:  handlers.NewDashboardHandler(st, advisor.New("", "gpt-4o-mini")),
		Health:     handlers.NewHealthHandler(health.NewChecker(false)),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(models.LoginRequest{Username: username, Password: password})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func doAuthed(t *testing.T, srv *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestLoginAndBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	login(t, srv, "admin", "123")

	body, _ := json.Marshal(models.LoginRequest{Username: "admin", Password: "wrong"})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/quotations")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminOnlyRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	acctToken := login(t, srv, "acct", "123")
	adminToken := login(t, srv, "admin", "123")

	settings := models.DefaultSettings()
	settings.ExchangeRate = 1450

	resp := doAuthed(t, srv, http.MethodPut, "/api/settings", acctToken, settings)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doAuthed(t, srv, http.MethodPut, "/api/settings", adminToken, settings)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, srv, http.MethodDelete, "/api/sms-logs", acctToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestQuotationLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "admin", "123")

	resp := doAuthed(t, srv, http.MethodPost, "/api/quotations", token, models.CreateQuotationRequest{
		ClientName: "Client A",
		Items:      []models.ServiceItem{{Description: "seo", Price: 400}, {Description: "ads", Price: 100}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Quotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, 500.0, created.Total)

	resp = doAuthed(t, srv, http.MethodPost, "/api/quotations/"+created.ID+"/status", token,
		models.SetStatusRequest{Status: models.QuotationAccepted})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Quotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, models.QuotationAccepted, updated.Status)

	resp = doAuthed(t, srv, http.MethodGet, "/api/quotations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Quotation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestDashboardTotals(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "acct", "123")

	resp := doAuthed(t, srv, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var out struct {
		Receipts          float64 `json:"receipts"`
		OperatingExpenses float64 `json:"operatingExpenses"`
		OwnerWithdrawals  float64 `json:"ownerWithdrawals"`
		Balance           float64 `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	// 100 USD at the default 1500 rate, minus a 50000 IQD withdrawal
	assert.Equal(t, 150000.0, out.Receipts)
	assert.Equal(t, 0.0, out.OperatingExpenses)
	assert.Equal(t, 50000.0, out.OwnerWithdrawals)
	assert.Equal(t, 100000.0, out.Balance)
}

func TestHealthAndAdvice(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Status string `json:"status"`
		Mode   string `json:"mode"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "local", status.Mode)

	token := login(t, srv, "acct", "123")
	adviceResp := doAuthed(t, srv, http.MethodGet, "/api/dashboard/advice", token, nil)
	defer adviceResp.Body.Close()
	require.Equal(t, http.StatusOK, adviceResp.StatusCode)
	var advice map[string]string
	require.NoError(t, json.NewDecoder(adviceResp.Body).Decode(&advice))
	assert.NotEmpty(t, advice["advice"])
}
