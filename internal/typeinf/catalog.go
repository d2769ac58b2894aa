package typeinf

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"vizier/domain/field"
)

// Tester is one (type, weight, predicate) entry in the catalog. Testers are
// evaluated in declared order: pure-regex numeric testers first, then list
// membership, then the datetime-parse fallback. Ties at resolution time break
// toward the earlier catalog entry.
type Tester struct {
	Type   field.Type
	Weight float64
	Test   func(string) bool
}

var (
	integerRe   = regexp.MustCompile(`^-?\d+$`)
	decimalRe   = regexp.MustCompile(`^-?\d*\.\d+$`)
	yearRe      = regexp.MustCompile(`^(1[6-9]|20)\d{2}$`)
	coordRe     = regexp.MustCompile(`^-?\d{1,3}\.\d{4,}$`)
	urlRe       = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
	dateFormats = []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"02-01-2006",
		"2006-01",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"2 January 2006",
	}
	datetimeFormats = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"01/02/2006 15:04",
		"2006-01-02 15:04",
	}
)

func isInteger(v string) bool { return integerRe.MatchString(v) }

func isDecimal(v string) bool { return decimalRe.MatchString(v) }

func isBoolean(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

func isYear(v string) bool { return yearRe.MatchString(v) }

func isLatitude(v string) bool {
	if !coordRe.MatchString(v) {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f >= -90 && f <= 90
}

func isLongitude(v string) bool {
	if !coordRe.MatchString(v) {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f >= -180 && f <= 180
}

func isURL(v string) bool { return urlRe.MatchString(v) }

func isDate(v string) bool {
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func isDatetime(v string) bool {
	for _, layout := range datetimeFormats {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func isText(v string) bool { return len(v) > 64 }

// catalog returns the fixed ordered tester table. A fresh slice each call so
// callers cannot mutate the shared declaration order.
func catalog() []Tester {
	return []Tester{
		{field.TypeInteger, 3, isInteger},
		{field.TypeDecimal, 3, isDecimal},
		{field.TypeBoolean, 7, isBoolean},
		{field.TypeYear, 4, isYear},
		{field.TypeMonth, 7, isMonthName},
		{field.TypeDay, 7, isDayName},
		{field.TypeLatitude, 2, isLatitude},
		{field.TypeLongitude, 2, isLongitude},
		{field.TypeCountryCode2, 7, isCountryCode2},
		{field.TypeCountryCode3, 7, isCountryCode3},
		{field.TypeCountryName, 9, isCountryName},
		{field.TypeContinentName, 9, isContinentName},
		{field.TypeCity, 6, isCityName},
		{field.TypeURL, 9, isURL},
		{field.TypeDate, 8, isDate},
		{field.TypeDatetime, 8, isDatetime},
		{field.TypeText, 2, isText},
	}
}

// headerBoost is a weight boost applied when a column header contains the
// substring. The boost is scaled by the sample size so it competes with
// per-value tester weights.
type headerBoost struct {
	Substring string
	Type      field.Type
	Weight    float64
}

func headerBoosts() []headerBoost {
	return []headerBoost{
		{"year", field.TypeYear, 4},
		{"month", field.TypeMonth, 4},
		{"day", field.TypeDay, 4},
		{"date", field.TypeDate, 4},
		{"time", field.TypeDatetime, 4},
		{"latitude", field.TypeLatitude, 4},
		{"longitude", field.TypeLongitude, 4},
		{"lat", field.TypeLatitude, 2},
		{"lon", field.TypeLongitude, 2},
		{"lng", field.TypeLongitude, 2},
		{"country", field.TypeCountryName, 2},
		{"city", field.TypeCity, 4},
		{"url", field.TypeURL, 4},
	}
}
