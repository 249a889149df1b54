package model

// Currency maps an ISO 4217 code to its display symbol and name.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies is the static catalog offered for invoice composition.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
}

// CurrencyByCode looks up a catalog entry by code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencySymbol returns the display symbol for a currency code,
// falling back to "$" for unknown codes.
func CurrencySymbol(code string) string {
	if c, ok := CurrencyByCode(code); ok {
		return c.Symbol
	}
	return "$"
}
