package form

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDate accepts YYYY-MM-DD, RFC3339, zone-less timestamps and DD/MM/YYYY.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeDate rewrites any accepted date to YYYY-MM-DD, or returns "" when unparseable.
func NormalizeDate(value string) string {
	parsed, ok := ParseDate(value)
	if !ok {
		return ""
	}
	return parsed.Format(DateLayout)
}
