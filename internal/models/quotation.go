package models

type QuotationStatus string

const (
	QuotationPending  QuotationStatus = "PENDING"
	QuotationAccepted QuotationStatus = "ACCEPTED"
	QuotationRejected QuotationStatus = "REJECTED"
)

// ServiceItem is one line of a quotation. Quantity is carried for display but
// does not multiply into the total; the total is the sum of item prices.
type ServiceItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Currency    Currency `json:"currency,omitempty"`
}

type Quotation struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"clientName"`
	ClientPhone string          `json:"clientPhone,omitempty"`
	Date        string          `json:"date"`
	Items       []ServiceItem   `json:"items"`
	Total       float64         `json:"total"`
	Currency    Currency        `json:"currency"`
	Status      QuotationStatus `json:"status"`
	Note        string          `json:"note,omitempty"`
}

// ItemsTotal sums the item prices. The stored total is always this sum,
// recomputed at creation time.
func (q Quotation) ItemsTotal() float64 {
	var total float64
	for _, item := range q.Items {
		total += item.Price
	}
	return total
}

// CreateQuotationRequest represents the request body for creating a quotation
type CreateQuotationRequest struct {
	ClientName  string        `json:"clientName"`
	ClientPhone string        `json:"clientPhone,omitempty"`
	Date        string        `json:"date,omitempty"`
	Items       []ServiceItem `json:"items"`
	Currency    Currency      `json:"currency,omitempty"`
	Note        string        `json:"note,omitempty"`
}

// SetStatusRequest represents the request body for a status transition
type SetStatusRequest struct {
	Status QuotationStatus `json:"status"`
}
