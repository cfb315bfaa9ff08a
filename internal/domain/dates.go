package domain

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts seen across PWCG schema versions, most common first.
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a campaign date in any of the layouts PWCG has used.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDate renders a date as DD/MM/YYYY for display and exports.
// Zero dates render as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// DateKey renders a date in the compact YYYYMMDD form used as a weak join
// key between files.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("20060102")
}
