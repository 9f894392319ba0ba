package models

// TwilioConfig holds the SMS provider credentials kept inside agency settings.
type TwilioConfig struct {
	AccountSID string `json:"accountSid"`
	AuthToken  string `json:"authToken"`
	FromNumber string `json:"fromNumber"`
	SenderName string `json:"senderName"`
	IsEnabled  bool   `json:"isEnabled"`
}

// AgencyService is one entry of the agency's service catalog.
type AgencyService struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AgencySettings is a singleton: exactly one instance always exists,
// defaulted when absent and never deleted.
type AgencySettings struct {
	Name           string          `json:"name"`
	Logo           string          `json:"logo"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Services       []AgencyService `json:"services"`
	QuotationTerms []string        `json:"quotationTerms"`
	Twilio         TwilioConfig    `json:"twilio"`
	ExchangeRate   float64         `json:"exchangeRate"` // IQD per 1 USD
}

// DefaultSettings returns the deployment defaults used whenever no settings
// document exists yet.
func DefaultSettings() AgencySettings {
	return AgencySettings{
		Name:           "وكالة نقطة للتسويق الرقمي",
		Services:       []AgencyService{},
		QuotationTerms: []string{},
		Twilio:         TwilioConfig{SenderName: "NOQTA"},
		ExchangeRate:   1500,
	}
}
