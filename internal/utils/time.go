package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// NormalizeDateTime converts client-side date-picker values into the
// canonical "YYYY-MM-DD HH:MM:SS" storage format. HTML datetime-local
// inputs send "2006-01-02T15:04" (sometimes with seconds); a plain
// space-separated value is accepted as-is after validation.
func NormalizeDateTime(s string) (string, error) {
	v := strings.TrimSpace(s)
	v = strings.Replace(v, "T", " ", 1)

	layouts := []string{layoutDateTime, "2006-01-02 15:04"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t.Format(layoutDateTime), nil
		}
	}
	return "", fmt.Errorf("invalid datetime %q", s)
}
