package finance

import "agency-backend/internal/models"

// ToIQD converts an amount to Iraqi dinar using rate (IQD per 1 USD).
// IQD amounts pass through unchanged. The settings manager guarantees
// rate > 0 before it reaches this function.
func ToIQD(amount float64, currency models.Currency, rate float64) float64 {
	if currency.OrDefault() == models.USD {
		return amount * rate
	}
	return amount
}

// ToUSD converts an amount to US dollars using rate (IQD per 1 USD).
func ToUSD(amount float64, currency models.Currency, rate float64) float64 {
	if currency.OrDefault() == models.USD {
		return amount
	}
	return amount / rate
}

// ToOther converts an amount to the currency it is not tagged with.
func ToOther(amount float64, currency models.Currency, rate float64) float64 {
	if currency.OrDefault() == models.USD {
		return amount * rate
	}
	return amount / rate
}
