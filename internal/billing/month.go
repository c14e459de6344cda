// Package billing holds the delivery calendar, the totals derived from it and
// the plain-text bill rendered for messaging.
package billing

import (
	"fmt"
	"time"
)

// DateLayout is the key format of every calendar entry.
const DateLayout = "2006-01-02"

// Month identifies the calendar month currently being billed.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns midnight UTC of the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// FirstWeekday returns the column of the 1st, Sunday being 0.
func (m Month) FirstWeekday() int {
	return int(m.First().Weekday())
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// DateKey returns the entry key of the given day of the month.
func (m Month) DateKey(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

// Contains reports whether key is a valid date inside the month.
func (m Month) Contains(key string) bool {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return false
	}
	return t.Year() == m.Year && t.Month() == m.Month
}

// Name returns the English month name, e.g. "March".
func (m Month) Name() string {
	return m.Month.String()
}

// Label returns the billing period label, e.g. "March 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// String implements fmt.Stringer.
func (m Month) String() string {
	return m.Label()
}

// DayOf extracts the day number from an entry key. Malformed keys yield 0.
func DayOf(key string) int {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return 0
	}
	return t.Day()
}
