package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agency-backend/internal/models"
)

func TestSummarizeEmptyLedger(t *testing.T) {
	totals := Summarize(nil, 1500)
	assert.Zero(t, totals.Receipts)
	assert.Zero(t, totals.OperatingExpenses)
	assert.Zero(t, totals.OwnerWithdrawals)
	assert.Zero(t, totals.Balance)
}

func TestSummarizeMixedCurrencies(t *testing.T) {
	vouchers := []models.Voucher{
		{Type: models.VoucherReceipt, Amount: 100, Currency: models.USD},
		{Type: models.VoucherPayment, Amount: 50000, Currency: models.IQD, Category: models.CategoryOwnerWithdrawal},
	}

	totals := Summarize(vouchers, 1500)
	assert.Equal(t, 150000.0, totals.Receipts)
	assert.Equal(t, 50000.0, totals.OwnerWithdrawals)
	assert.Equal(t, 0.0, totals.OperatingExpenses)
	assert.Equal(t, 100000.0, totals.Balance)
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	vouchers := []models.Voucher{
		{Type: models.VoucherReceipt, Amount: 1250.75, Currency: models.USD},
		{Type: models.VoucherReceipt, Amount: 300000, Currency: models.IQD},
		{Type: models.VoucherPayment, Amount: 80000, Currency: models.IQD, Category: models.CategorySalary},
		{Type: models.VoucherPayment, Amount: 45.5, Currency: models.USD, Category: models.CategoryDaily},
		{Type: models.VoucherPayment, Amount: 200, Currency: models.USD, Category: models.CategoryOwnerWithdrawal},
		{Type: models.VoucherPayment, Amount: 120000, Currency: models.IQD, Category: models.CategoryFreelance},
	}

	totals := Summarize(vouchers, 1320.5)
	assert.Equal(t, totals.Balance, totals.Receipts-totals.OperatingExpenses-totals.OwnerWithdrawals)
}

func TestSummarizeAll(t *testing.T) {
	data := models.Empty()
	data.Vouchers = []models.Voucher{
		{Type: models.VoucherReceipt, Amount: 500000, Currency: models.IQD},
	}
	data.Quotations = []models.Quotation{
		{Status: models.QuotationAccepted, Total: 750000},
		{Status: models.QuotationPending, Total: 100000},
		{Status: models.QuotationPending, Total: 250000},
		{Status: models.QuotationRejected, Total: 999999},
	}

	o := SummarizeAll(data)
	assert.Equal(t, 500000.0, o.Receipts)
	assert.Equal(t, 750000.0, o.AcceptedQuotesTotal)
	assert.Equal(t, 2, o.PendingQuotes)
}
