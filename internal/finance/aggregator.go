package finance

import "agency-backend/internal/models"

// Totals are the dashboard headline figures, all in IQD. They are derived on
// every read from the voucher ledger and the configured exchange rate; nothing
// here is persisted. By construction
// Balance == Receipts - OperatingExpenses - OwnerWithdrawals.
type Totals struct {
	Receipts          float64 `json:"receipts"`
	OperatingExpenses float64 `json:"operatingExpenses"`
	OwnerWithdrawals  float64 `json:"ownerWithdrawals"`
	Balance           float64 `json:"balance"`
}

// Summarize derives the dashboard totals from the voucher collection.
func Summarize(vouchers []models.Voucher, rate float64) Totals {
	var receipts, allPayments, withdrawals float64

	for _, v := range vouchers {
		amount := ToIQD(v.Amount, v.Currency, rate)
		switch v.Type {
		case models.VoucherReceipt:
			receipts += amount
		case models.VoucherPayment:
			allPayments += amount
			if v.Category == models.CategoryOwnerWithdrawal {
				withdrawals += amount
			}
		}
	}

	return Totals{
		Receipts:          receipts,
		OperatingExpenses: allPayments - withdrawals,
		OwnerWithdrawals:  withdrawals,
		Balance:           receipts - allPayments,
	}
}

// Overview extends the dashboard totals with the quotation pipeline figures
// the advisor prompt uses.
type Overview struct {
	Totals
	AcceptedQuotesTotal float64 `json:"acceptedQuotesTotal"`
	PendingQuotes       int     `json:"pendingQuotes"`
}

// SummarizeAll derives the full financial overview from the aggregate.
func SummarizeAll(data models.AppData) Overview {
	o := Overview{Totals: Summarize(data.Vouchers, data.Settings.ExchangeRate)}
	for _, q := range data.Quotations {
		switch q.Status {
		case models.QuotationAccepted:
			o.AcceptedQuotesTotal += q.Total
		case models.QuotationPending:
			o.PendingQuotes++
		}
	}
	return o
}
