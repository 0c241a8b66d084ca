package bot

import (
	"maps"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseBackendTime(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatExpiry renders an ISO expiry as DD/MM/YYYY. When the backend gives
// no usable date, the expiry is estimated as now + durationDays.
func FormatExpiry(expiresAt string, durationDays int, now time.Time) string {
	if t, ok := parseBackendTime(expiresAt); ok {
		return t.Format(dateLayout)
	}
	return now.AddDate(0, 0, durationDays).Format(dateLayout)
}

// FormatDate renders an ISO date as DD/MM/YYYY, passing anything else
// through unchanged.
func FormatDate(s string) string {
	if s == "" {
		return notAvailable
	}
	if t, ok := parseBackendTime(s); ok {
		return t.Format(dateLayout)
	}
	return s
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}
