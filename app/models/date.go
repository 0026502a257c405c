package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout reads calendar dates as month/day/year. Zero padding is
// optional, so "01/02/2023" and "1/2/2023" are the same day.
const DateLayout = "1/2/2006"

// ParseDate parses s with DateLayout as a UTC calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected MM/DD/YYYY", s)
	}
	return datatypes.Date(t), nil
}

// FormatDate renders d as zero-padded MM/DD/YYYY.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("01/02/2006")
}
