package format

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		format string
		want   string
	}{
		{DateFormatUS, "12/31/2024"},
		{DateFormatEU, "31/12/2024"},
		{DateFormatISO, "2024-12-31"},
		{DateFormatDE, "31.12.2024"},
		{DateFormatJP, "2024/12/31"},
		{"bogus", "12/31/2024"},
	}

	for _, c := range cases {
		if got := FormatDate(date, c.format); got != c.want {
			t.Errorf("FormatDate(%s) = %q, want %q", c.format, got, c.want)
		}
	}
}

func TestFormatDateZeroPadding(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(date, DateFormatUS); got != "01/05/2024" {
		t.Errorf("expected zero-padded components, got %q", got)
	}
}

func TestFormatDateInvalid(t *testing.T) {
	if got := FormatDate(time.Time{}, DateFormatUS); got != "Invalid Date" {
		t.Errorf("expected \"Invalid Date\", got %q", got)
	}
	if got := FormatDateTime(time.Time{}, DateFormatUS); got != "Invalid Date" {
		t.Errorf("expected \"Invalid Date\", got %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	date := time.Date(2024, 12, 31, 9, 5, 0, 0, time.UTC)
	if got := FormatDateTime(date, DateFormatISO); got != "2024-12-31 09:05" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(1234.56, "USD"); got != "$1,234.56" {
		t.Errorf("USD: got %q", got)
	}
	if got := FormatCurrency(0, "USD"); got != "$0.00" {
		t.Errorf("zero: got %q", got)
	}
	// Unknown currency falls back to the USD table entry.
	if got := FormatCurrency(5, "XXX"); got != "$5.00" {
		t.Errorf("unknown code: got %q", got)
	}
}

func TestCurrencyLookups(t *testing.T) {
	if got := CurrencySymbol("GBP"); got != "£" {
		t.Errorf("symbol: got %q", got)
	}
	if got := CurrencySymbol("nope"); got != "$" {
		t.Errorf("unknown symbol: got %q", got)
	}
	if got := CurrencyName("EUR"); got != "Euro" {
		t.Errorf("name: got %q", got)
	}
	if got := CurrencyName("nope"); got != "US Dollar" {
		t.Errorf("unknown name: got %q", got)
	}
}

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$1,234.56", 1234.56},
		{"€99.90", 99.9},
		{"-42", -42},
		{"abc", 0},
		{"", 0},
		{"1 000.50 kr", 1000.50},
	}

	for _, c := range cases {
		if got := ParseCurrency(c.in); got != c.want {
			t.Errorf("ParseCurrency(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if got := ParseDate("31.12.2024", DateFormatDE); !got.Equal(want) {
		t.Errorf("ParseDate DE = %v", got)
	}
	if got := ParseDate("2024-12-31", DateFormatISO); !got.Equal(want) {
		t.Errorf("ParseDate ISO = %v", got)
	}
	if got := ParseDate("garbage", DateFormatUS); !got.IsZero() {
		t.Errorf("expected zero time for garbage, got %v", got)
	}
}
