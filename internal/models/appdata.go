package models

// AppData is the complete in-memory snapshot of all business entities.
// Collections are kept newest-first: creates prepend, updates replace in
// place by id, deletes filter by id.
type AppData struct {
	Quotations []Quotation    `json:"quotations"`
	Vouchers   []Voucher      `json:"vouchers"`
	Contracts  []Contract     `json:"contracts"`
	Users      []User         `json:"users"`
	Settings   AgencySettings `json:"settings"`
	SMSLogs    []SMSLog       `json:"smsLogs"`
}

// Normalize fills the gaps older stored documents may have: missing
// collections become empty slices and a zero settings value becomes the
// deployment default. Loading data written before the contracts or smsLogs
// collections existed must not fail.
func (d *AppData) Normalize() {
	if d.Quotations == nil {
		d.Quotations = []Quotation{}
	}
	if d.Vouchers == nil {
		d.Vouchers = []Voucher{}
	}
	if d.Contracts == nil {
		d.Contracts = []Contract{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.SMSLogs == nil {
		d.SMSLogs = []SMSLog{}
	}
	if d.Settings.Name == "" && d.Settings.ExchangeRate == 0 {
		d.Settings = DefaultSettings()
	}
	if d.Settings.ExchangeRate <= 0 {
		d.Settings.ExchangeRate = DefaultSettings().ExchangeRate
	}
	if d.Settings.Services == nil {
		d.Settings.Services = []AgencyService{}
	}
	if d.Settings.QuotationTerms == nil {
		d.Settings.QuotationTerms = []string{}
	}
}

// Empty returns a normalized empty aggregate with default settings.
func Empty() AppData {
	d := AppData{}
	d.Normalize()
	return d
}
