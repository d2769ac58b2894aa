package typeinf

import "time"

// LooksLikeDate reports whether a string parses as a date, datetime, or
// bare year. Used for header-level detection of wide time-series layouts.
func LooksLikeDate(s string) bool {
	return isDate(s) || isDatetime(s) || isYear(s)
}

// ParseTemporal parses a date-like string into a time.Time, trying date
// layouts first, then datetime layouts, then bare years.
func ParseTemporal(s string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range datetimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if isYear(s) {
		if t, err := time.Parse("2006", s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
