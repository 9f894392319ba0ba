package models

type ContractStatus string

const (
	ContractActive   ContractStatus = "ACTIVE"
	ContractArchived ContractStatus = "ARCHIVED"
)

type ContractClause struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Contract struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	PartyAName  string           `json:"partyAName"`
	PartyATitle string           `json:"partyATitle"`
	PartyBName  string           `json:"partyBName"`
	PartyBTitle string           `json:"partyBTitle"`
	Subject     string           `json:"subject"`
	TotalValue  float64          `json:"totalValue"`
	Currency    Currency         `json:"currency"`
	Clauses     []ContractClause `json:"clauses"`
	Status      ContractStatus   `json:"status"`
}

// CreateContractRequest represents the request body for creating a contract
type CreateContractRequest struct {
	Date        string           `json:"date,omitempty"`
	PartyAName  string           `json:"partyAName"`
	PartyATitle string           `json:"partyATitle"`
	PartyBName  string           `json:"partyBName"`
	PartyBTitle string           `json:"partyBTitle"`
	Subject     string           `json:"subject"`
	TotalValue  float64          `json:"totalValue"`
	Currency    Currency         `json:"currency,omitempty"`
	Clauses     []ContractClause `json:"clauses"`
	Status      ContractStatus   `json:"status,omitempty"`
}
