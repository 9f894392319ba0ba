package models

type VoucherType string

const (
	VoucherReceipt VoucherType = "RECEIPT"
	VoucherPayment VoucherType = "PAYMENT"
)

// VoucherCategory partitions the single voucher ledger into its logical views:
// generic vouchers, daily/salary expenses, owner withdrawals and freelancer
// settlements all live in the same collection and differ only by this tag.
type VoucherCategory string

const (
	CategorySalary          VoucherCategory = "SALARY"
	CategoryDaily           VoucherCategory = "DAILY"
	CategoryGeneral         VoucherCategory = "GENERAL"
	CategoryVoucher         VoucherCategory = "VOUCHER"
	CategoryOwnerWithdrawal VoucherCategory = "OWNER_WITHDRAWAL"
	CategoryFreelance       VoucherCategory = "FREELANCE"
)

// Voucher is a single recorded cash movement.
type Voucher struct {
	ID          string          `json:"id"`
	Type        VoucherType     `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    Currency        `json:"currency"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	PartyName   string          `json:"partyName"`
	PartyPhone  string          `json:"partyPhone,omitempty"`
	Category    VoucherCategory `json:"category,omitempty"`
}

// CreateVoucherRequest represents the request body for creating or updating a voucher
type CreateVoucherRequest struct {
	Type        VoucherType     `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    Currency        `json:"currency"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description"`
	PartyName   string          `json:"partyName"`
	PartyPhone  string          `json:"partyPhone,omitempty"`
	Category    VoucherCategory `json:"category,omitempty"`
}

// SettlementItem is one unpaid work item folded into a freelance settlement.
type SettlementItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// SettlementRequest aggregates a freelancer's unpaid work for a period into
// one payment voucher.
type SettlementRequest struct {
	PartyName  string           `json:"partyName"`
	PartyPhone string           `json:"partyPhone,omitempty"`
	Currency   Currency         `json:"currency"`
	Date       string           `json:"date,omitempty"`
	Month      string           `json:"month"`
	Items      []SettlementItem `json:"items"`
}
