package utils

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD or RFC3339")

// Accepted request layouts, most specific first. Values without an offset
// are read as UTC.
var recordDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DayLayout,
}

// ParseRecordDate converts a request date into the canonical tracker day:
// the UTC calendar day at midnight. An empty value means "today".
func ParseRecordDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return StartOfDay(now), nil
	}

	for _, layout := range recordDateLayouts {
		if parsed, err := time.Parse(layout, input); err == nil {
			return StartOfDay(parsed), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// StartOfDay returns midnight UTC of the UTC calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDate(t time.Time) datatypes.Date {
	return datatypes.Date(StartOfDay(t))
}

// DayKey renders a stored tracker date as YYYY-MM-DD.
func DayKey(date datatypes.Date) string {
	return time.Time(date).UTC().Format(DayLayout)
}
