package models

// Currency is the ISO-ish tag carried by every monetary value.
// The agency operates in Iraqi dinar with US dollar as the secondary currency.
type Currency string

const (
	IQD Currency = "IQD"
	USD Currency = "USD"
)

// Valid reports whether c is one of the two supported currencies.
func (c Currency) Valid() bool {
	return c == IQD || c == USD
}

// OrDefault returns IQD for an empty tag, matching the server convention of
// treating untagged legacy rows as dinar amounts.
func (c Currency) OrDefault() Currency {
	if c == "" {
		return IQD
	}
	return c
}
