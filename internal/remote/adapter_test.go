package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-backend/internal/models"
)

func TestListVouchersBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vouchers/", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "secret-key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"v-1","type":"RECEIPT","amount":"1500.50","currency":"IQD","date":"2024-05-01","description":"d","partyName":"p"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key")
	c.SetTokenSource(func() string { return "tok-1" })

	vouchers, err := c.ListVouchers(context.Background())
	require.NoError(t, err)
	require.Len(t, vouchers, 1)
	assert.Equal(t, "v-1", vouchers[0].ID)
	assert.Equal(t, 1500.50, vouchers[0].Amount)
}

func TestListVouchersResultsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"results":[{"id":"v-1","type":"RECEIPT","amount":"100","currency":"USD","date":"","description":"","partyName":""},{"id":"v-2","type":"PAYMENT","amount":"50000","currency":"IQD","date":"","description":"","partyName":""}]}`))
	}))
	defer srv.Close()

	vouchers, err := NewClient(srv.URL, "").ListVouchers(context.Background())
	require.NoError(t, err)
	require.Len(t, vouchers, 2)
	assert.Equal(t, models.USD, vouchers[0].Currency)
	assert.Equal(t, 50000.0, vouchers[1].Amount)
}

func TestCreateVoucherSendsDecimalStrings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// amount travels as a decimal string, not a JSON number
		assert.Equal(t, "1250.75", body["amount"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"srv-9","type":"PAYMENT","amount":"1250.75","currency":"USD","date":"2024-05-01","description":"ad spend","partyName":"vendor"}`))
	}))
	defer srv.Close()

	created, err := NewClient(srv.URL, "").CreateVoucher(context.Background(), models.Voucher{
		Type:        models.VoucherPayment,
		Amount:      1250.75,
		Currency:    models.USD,
		Date:        "2024-05-01",
		Description: "ad spend",
		PartyName:   "vendor",
	})
	require.NoError(t, err)
	// server-assigned id is canonical
	assert.Equal(t, "srv-9", created.ID)
	assert.Equal(t, 1250.75, created.Amount)
}

func TestCreateQuotationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").CreateQuotation(context.Background(), models.Quotation{ClientName: "x"})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestTokenRejectedMapsToAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"No active account found"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Token(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrAuthRejected)
}

func TestUpdateSettingsFallsBackToCreate(t *testing.T) {
	var posted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[]`))
		case r.Method == http.MethodPost:
			posted = true
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1,"name":"agency","logo":"","address":"","phone":"","email":"","services":[],"quotationTerms":[],"exchangeRate":1400}`))
		default:
			t.Fatalf("unexpected %s", r.Method)
		}
	}))
	defer srv.Close()

	s, err := NewClient(srv.URL, "").UpdateSettings(context.Background(), models.AgencySettings{Name: "agency", ExchangeRate: 1400})
	require.NoError(t, err)
	assert.True(t, posted)
	assert.Equal(t, 1400.0, s.ExchangeRate)
}

func TestUpdateSettingsPutsExistingSingleton(t *testing.T) {
	var putPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"id":7,"name":"old","logo":"","address":"","phone":"","email":"","services":[],"quotationTerms":[],"exchangeRate":1500}]`))
		case http.MethodPut:
			putPath = r.URL.Path
			w.Write([]byte(`{"id":7,"name":"new","logo":"","address":"","phone":"","email":"","services":[],"quotationTerms":[],"exchangeRate":1480}`))
		}
	}))
	defer srv.Close()

	s, err := NewClient(srv.URL, "").UpdateSettings(context.Background(), models.AgencySettings{Name: "new", ExchangeRate: 1480})
	require.NoError(t, err)
	assert.Equal(t, "/api/settings/7/", putPath)
	assert.Equal(t, "new", s.Name)
}

func TestFetchAppDataDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/vouchers/" {
			w.Write([]byte(`[{"id":"v-1","type":"RECEIPT","amount":"10","currency":"IQD","date":"","description":"","partyName":""}]`))
			return
		}
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	data := NewClient(srv.URL, "").FetchAppData(context.Background())
	assert.Len(t, data.Vouchers, 1)
	assert.Empty(t, data.Quotations)
	assert.Empty(t, data.Contracts)
	assert.Equal(t, models.DefaultSettings().ExchangeRate, data.Settings.ExchangeRate)
}
