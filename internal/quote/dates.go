package quote

import (
	"time"
)

// dmyLayout is the DD/MM/YYYY format the catalog stores room check-in and
// check-out dates in.
const dmyLayout = "02/01/2006"

// ParseDMY parses a DD/MM/YYYY date string in UTC.
func ParseDMY(s string) (time.Time, error) {
	return time.ParseInLocation(dmyLayout, s, time.UTC)
}

// FormatDMY renders a date back into the catalog's DD/MM/YYYY form.
func FormatDMY(t time.Time) string {
	return t.Format(dmyLayout)
}

// NightsBetween returns the number of nights covered by [from, to).  Partial
// days are ignored; a reversed or zero range counts as zero nights.
func NightsBetween(from, to time.Time) int {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
