package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-backend/internal/models"
)

func TestLoadMissingFile(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	data, err := l.Load()
	require.NoError(t, err)
	assert.NotNil(t, data.Quotations)
	assert.NotNil(t, data.Vouchers)
	assert.Equal(t, models.DefaultSettings().ExchangeRate, data.Settings.ExchangeRate)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	data := models.Empty()
	data.Vouchers = []models.Voucher{
		{ID: "v-1", Type: models.VoucherReceipt, Amount: 250.5, Currency: models.USD, PartyName: "client"},
	}
	data.Settings.ExchangeRate = 1320

	require.NoError(t, l.Save(data))

	loaded, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, data.Vouchers, loaded.Vouchers)
	assert.Equal(t, 1320.0, loaded.Settings.ExchangeRate)
}

func TestLoadLegacyDocumentDefaultsMissingCollections(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	// Document written before contracts and smsLogs existed.
	legacy := `{
		"quotations": [{"id": "QT-1", "clientName": "x", "items": [], "total": 0, "currency": "IQD", "status": "PENDING"}],
		"vouchers": [],
		"users": [{"id": "u1", "name": "a", "username": "admin", "role": "ADMIN"}],
		"settings": {"name": "agency", "exchangeRate": 1450}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataFileName), []byte(legacy), 0o644))

	data, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, []models.Contract{}, data.Contracts)
	assert.Equal(t, []models.SMSLog{}, data.SMSLogs)
	assert.Len(t, data.Quotations, 1)
	assert.Equal(t, 1450.0, data.Settings.ExchangeRate)
}

func TestLoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, dataFileName), []byte("{not json"), 0o644))

	_, err = l.Load()
	assert.Error(t, err)
}
