// Package format provides pure display formatting for amounts and dates,
// honoring the user's currency and date-format preferences.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency describes one supported display currency.
type Currency struct {
	Symbol string
	Name   string
	Locale string
}

// SupportedCurrencies is the fixed table of currencies the UI offers.
var SupportedCurrencies = map[string]Currency{
	"USD": {Symbol: "$", Name: "US Dollar", Locale: "en-US"},
	"EUR": {Symbol: "€", Name: "Euro", Locale: "de-DE"},
	"GBP": {Symbol: "£", Name: "British Pound", Locale: "en-GB"},
	"JPY": {Symbol: "¥", Name: "Japanese Yen", Locale: "ja-JP"},
	"CNY": {Symbol: "¥", Name: "Chinese Yuan", Locale: "zh-CN"},
	"INR": {Symbol: "₹", Name: "Indian Rupee", Locale: "en-IN"},
	"AUD": {Symbol: "A$", Name: "Australian Dollar", Locale: "en-AU"},
	"CAD": {Symbol: "C$", Name: "Canadian Dollar", Locale: "en-CA"},
	"CHF": {Symbol: "CHF", Name: "Swiss Franc", Locale: "de-CH"},
	"SEK": {Symbol: "kr", Name: "Swedish Krona", Locale: "sv-SE"},
	"NZD": {Symbol: "NZ$", Name: "New Zealand Dollar", Locale: "en-NZ"},
	"SGD": {Symbol: "S$", Name: "Singapore Dollar", Locale: "en-SG"},
	"HKD": {Symbol: "HK$", Name: "Hong Kong Dollar", Locale: "en-HK"},
	"KRW": {Symbol: "₩", Name: "South Korean Won", Locale: "ko-KR"},
	"MXN": {Symbol: "MX$", Name: "Mexican Peso", Locale: "es-MX"},
	"VND": {Symbol: "₫", Name: "Vietnamese Dong", Locale: "vi-VN"},
}

// lookup resolves a currency code, falling back to USD for unknown codes.
func lookup(code string) Currency {
	if c, ok := SupportedCurrencies[code]; ok {
		return c
	}
	return SupportedCurrencies["USD"]
}

// FormatCurrency formats an amount using the locale conventions of the given
// currency code. Unknown codes fall back to USD. If the locale cannot be
// parsed, it falls back to symbol + two decimal places.
func FormatCurrency(amount float64, code string) string {
	info := lookup(code)

	tag, err := language.Parse(info.Locale)
	if err != nil {
		return info.Symbol + strconv.FormatFloat(amount, 'f', 2, 64)
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return info.Symbol + formatted
}

// CurrencySymbol returns the display symbol for a currency code.
func CurrencySymbol(code string) string {
	return lookup(code).Symbol
}

// CurrencyName returns the display name for a currency code.
func CurrencyName(code string) string {
	return lookup(code).Name
}

// ParseCurrency parses a formatted currency string back to a number. Every
// character except digits, '.' and '-' is stripped before parsing; anything
// that still fails to parse yields 0.
func ParseCurrency(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
