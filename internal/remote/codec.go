package remote

import (
	"github.com/shopspring/decimal"

	"agency-backend/internal/models"
)

// Wire representations. The server serializes numeric fields as decimal
// strings; decimal.Decimal round-trips them losslessly in both directions
// (ingress also tolerates bare JSON numbers from older server builds).

type serviceItemWire struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Currency    models.Currency `json:"currency,omitempty"`
}

type quotationWire struct {
	ID          string                 `json:"id,omitempty"`
	ClientName  string                 `json:"clientName"`
	ClientPhone string                 `json:"clientPhone,omitempty"`
	Date        string                 `json:"date"`
	Items       []serviceItemWire      `json:"items"`
	Total       decimal.Decimal        `json:"total"`
	Currency    models.Currency        `json:"currency"`
	Status      models.QuotationStatus `json:"status"`
	Note        string                 `json:"note,omitempty"`
}

type voucherWire struct {
	ID          string                 `json:"id,omitempty"`
	Type        models.VoucherType     `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Currency    models.Currency        `json:"currency"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	PartyName   string                 `json:"partyName"`
	PartyPhone  string                 `json:"partyPhone,omitempty"`
	Category    models.VoucherCategory `json:"category,omitempty"`
}

type contractWire struct {
	ID          string                  `json:"id,omitempty"`
	Date        string                  `json:"date"`
	PartyAName  string                  `json:"partyAName"`
	PartyATitle string                  `json:"partyATitle"`
	PartyBName  string                  `json:"partyBName"`
	PartyBTitle string                  `json:"partyBTitle"`
	Subject     string                  `json:"subject"`
	TotalValue  decimal.Decimal         `json:"totalValue"`
	Currency    models.Currency         `json:"currency"`
	Clauses     []models.ContractClause `json:"clauses"`
	Status      models.ContractStatus   `json:"status"`
}

type userWire struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type settingsWire struct {
	ID             int                    `json:"id,omitempty"`
	Name           string                 `json:"name"`
	Logo           string                 `json:"logo"`
	Address        string                 `json:"address"`
	Phone          string                 `json:"phone"`
	Email          string                 `json:"email"`
	Services       []models.AgencyService `json:"services"`
	QuotationTerms []string               `json:"quotationTerms"`
	Twilio         *models.TwilioConfig   `json:"twilio,omitempty"`
	ExchangeRate   *float64               `json:"exchangeRate,omitempty"`
}

type smsLogWire struct {
	ID        string `json:"id,omitempty"`
	To        string `json:"to"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

func quotationToWire(q models.Quotation) quotationWire {
	items := make([]serviceItemWire, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, serviceItemWire{
			ID:          item.ID,
			Description: item.Description,
			Price:       decimal.NewFromFloat(item.Price),
			Quantity:    item.Quantity,
			Currency:    item.Currency,
		})
	}
	return quotationWire{
		ID:          q.ID,
		ClientName:  q.ClientName,
		ClientPhone: q.ClientPhone,
		Date:        q.Date,
		Items:       items,
		Total:       decimal.NewFromFloat(q.Total),
		Currency:    q.Currency,
		Status:      q.Status,
		Note:        q.Note,
	}
}

func quotationFromWire(w quotationWire) models.Quotation {
	items := make([]models.ServiceItem, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, models.ServiceItem{
			ID:          item.ID,
			Description: item.Description,
			Price:       item.Price.InexactFloat64(),
			Quantity:    item.Quantity,
			Currency:    item.Currency.OrDefault(),
		})
	}
	return models.Quotation{
		ID:          w.ID,
		ClientName:  w.ClientName,
		ClientPhone: w.ClientPhone,
		Date:        w.Date,
		Items:       items,
		Total:       w.Total.InexactFloat64(),
		Currency:    w.Currency.OrDefault(),
		Status:      w.Status,
		Note:        w.Note,
	}
}

func voucherToWire(v models.Voucher) voucherWire {
	return voucherWire{
		ID:          v.ID,
		Type:        v.Type,
		Amount:      decimal.NewFromFloat(v.Amount),
		Currency:    v.Currency,
		Date:        v.Date,
		Description: v.Description,
		PartyName:   v.PartyName,
		PartyPhone:  v.PartyPhone,
		Category:    v.Category,
	}
}

func voucherFromWire(w voucherWire) models.Voucher {
	return models.Voucher{
		ID:          w.ID,
		Type:        w.Type,
		Amount:      w.Amount.InexactFloat64(),
		Currency:    w.Currency.OrDefault(),
		Date:        w.Date,
		Description: w.Description,
		PartyName:   w.PartyName,
		PartyPhone:  w.PartyPhone,
		Category:    w.Category,
	}
}

func contractToWire(c models.Contract) contractWire {
	return contractWire{
		ID:          c.ID,
		Date:        c.Date,
		PartyAName:  c.PartyAName,
		PartyATitle: c.PartyATitle,
		PartyBName:  c.PartyBName,
		PartyBTitle: c.PartyBTitle,
		Subject:     c.Subject,
		TotalValue:  decimal.NewFromFloat(c.TotalValue),
		Currency:    c.Currency,
		Clauses:     c.Clauses,
		Status:      c.Status,
	}
}

func contractFromWire(w contractWire) models.Contract {
	clauses := w.Clauses
	if clauses == nil {
		clauses = []models.ContractClause{}
	}
	return models.Contract{
		ID:          w.ID,
		Date:        w.Date,
		PartyAName:  w.PartyAName,
		PartyATitle: w.PartyATitle,
		PartyBName:  w.PartyBName,
		PartyBTitle: w.PartyBTitle,
		Subject:     w.Subject,
		TotalValue:  w.TotalValue.InexactFloat64(),
		Currency:    w.Currency.OrDefault(),
		Clauses:     clauses,
		Status:      w.Status,
	}
}

func userFromWire(w userWire) models.User {
	role := models.RoleAccountant
	if w.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}
	return models.User{
		ID:        w.ID,
		Name:      w.Name,
		Username:  w.Username,
		Role:      role,
		CreatedAt: w.CreatedAt,
	}
}

func settingsFromWire(w settingsWire) models.AgencySettings {
	s := models.AgencySettings{
		Name:           w.Name,
		Logo:           w.Logo,
		Address:        w.Address,
		Phone:          w.Phone,
		Email:          w.Email,
		Services:       w.Services,
		QuotationTerms: w.QuotationTerms,
	}
	if s.Services == nil {
		s.Services = []models.AgencyService{}
	}
	if s.QuotationTerms == nil {
		s.QuotationTerms = []string{}
	}
	if w.Twilio != nil {
		s.Twilio = *w.Twilio
	} else {
		s.Twilio = models.DefaultSettings().Twilio
	}
	if w.ExchangeRate != nil {
		s.ExchangeRate = *w.ExchangeRate
	} else {
		s.ExchangeRate = models.DefaultSettings().ExchangeRate
	}
	return s
}

func settingsToWire(s models.AgencySettings, id int) settingsWire {
	rate := s.ExchangeRate
	twilio := s.Twilio
	return settingsWire{
		ID:             id,
		Name:           s.Name,
		Logo:           s.Logo,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		Services:       s.Services,
		QuotationTerms: s.QuotationTerms,
		Twilio:         &twilio,
		ExchangeRate:   &rate,
	}
}

func smsLogFromWire(w smsLogWire) models.SMSLog {
	return models.SMSLog{
		ID:        w.ID,
		To:        w.To,
		Body:      w.Body,
		Status:    w.Status,
		Timestamp: w.Timestamp,
		Error:     w.Error,
	}
}
