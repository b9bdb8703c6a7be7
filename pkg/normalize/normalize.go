// Package normalize converts loosely typed form input into column values.
// Every parser returns nil for empty or unparseable input and never panics.
package normalize

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate accepts ISO dates and timestamps plus a few common form layouts.
func ParseDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// ParseInt accepts base-10 integers that fit an int4 column; "3.0" is
// accepted as 3, "3.5" is not.
func ParseInt(raw string) *int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err == nil {
		v := int(n)
		return &v
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	v := int(f)
	return &v
}

// ParseFloat accepts finite decimal numbers.
func ParseFloat(raw string) *float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseDecimal is ParseFloat for money columns, without binary rounding.
func ParseDecimal(raw string) *decimal.Decimal {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}

// ParseBool maps true/yes/1 and false/no/0, case-insensitively.
func ParseBool(raw string) *bool {
	var b bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		b = true
	case "false", "no", "0":
		b = false
	default:
		return nil
	}
	return &b
}

// Phone renders a phone number as a trimmed string.
func Phone(raw string) string {
	return strings.TrimSpace(raw)
}

// FormatDate renders a calendar date as YYYY-MM-DD, empty for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// FormatTimestamp renders an RFC 3339 UTC timestamp, empty for nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
