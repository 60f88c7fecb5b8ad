package format

import "time"

// Date format codes offered by the UI.
const (
	DateFormatUS  = "MM/DD/YYYY"
	DateFormatEU  = "DD/MM/YYYY"
	DateFormatISO = "YYYY-MM-DD"
	DateFormatDE  = "DD.MM.YYYY"
	DateFormatJP  = "YYYY/MM/DD"
)

// SupportedDateFormats maps each format code to its Go reference layout.
var SupportedDateFormats = map[string]string{
	DateFormatUS:  "01/02/2006",
	DateFormatEU:  "02/01/2006",
	DateFormatISO: "2006-01-02",
	DateFormatDE:  "02.01.2006",
	DateFormatJP:  "2006/01/02",
}

// FormatDate formats a date according to the given format code. The zero time
// is treated as unparseable input and yields the literal "Invalid Date".
// Unknown format codes fall back to MM/DD/YYYY.
func FormatDate(t time.Time, format string) string {
	if t.IsZero() {
		return "Invalid Date"
	}

	layout, ok := SupportedDateFormats[format]
	if !ok {
		layout = SupportedDateFormats[DateFormatUS]
	}
	return t.Format(layout)
}

// FormatDateTime formats a date plus a zero-padded HH:MM clock.
func FormatDateTime(t time.Time, format string) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return FormatDate(t, format) + t.Format(" 15:04")
}

// ParseDate parses a date string in any of the supported layouts, trying the
// preferred format code first. Returns the zero time when nothing matches.
func ParseDate(value, preferred string) time.Time {
	if layout, ok := SupportedDateFormats[preferred]; ok {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range SupportedDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
