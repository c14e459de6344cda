package billing

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned when a quantity typed by the operator is not a number.
var ErrInvalidQuantity = errors.New("quantity must be a number")

// DefaultQuantity is the quantity recorded by a single click on a day.
const DefaultQuantity = 1.0

// Entry is one day's delivered quantity in liters.
type Entry struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// Day returns the day of month of the entry.
func (e Entry) Day() int {
	return DayOf(e.Date)
}

// Sheet is the delivery calendar of a single month. Entries never carry a
// zero or negative quantity; a missing entry means no delivery that day.
type Sheet struct {
	month      Month
	entries    map[string]float64
	wholeMonth bool
}

// NewSheet returns an empty sheet for month.
func NewSheet(month Month) *Sheet {
	return &Sheet{
		month:   month,
		entries: make(map[string]float64),
	}
}

// Month returns the month being viewed.
func (s *Sheet) Month() Month {
	return s.month
}

// WholeMonth reports whether the whole month toggle is on.
func (s *Sheet) WholeMonth() bool {
	return s.wholeMonth
}

// ToggleOrOpen records a default delivery on an empty day. When the day already
// has an entry it is left untouched and its quantity is returned so the caller
// can ask for confirmation before changing it.
func (s *Sheet) ToggleOrOpen(date string) (quantity float64, existing bool) {
	if q, ok := s.entries[date]; ok {
		return q, true
	}
	s.entries[date] = DefaultQuantity
	return DefaultQuantity, false
}

// SetQuantity stores a positive quantity for date and deletes the entry otherwise.
func (s *Sheet) SetQuantity(date string, quantity float64) {
	if quantity > 0 && !math.IsInf(quantity, 0) {
		s.entries[date] = quantity
		return
	}
	delete(s.entries, date)
}

// SetQuantityInput parses operator input before applying SetQuantity. Input
// that is not a finite number is rejected and the entry stays as it was.
func (s *Sheet) SetQuantityInput(date, raw string) error {
	quantity, err := ParseQuantity(raw)
	if err != nil {
		return err
	}
	s.SetQuantity(date, quantity)
	return nil
}

// ParseQuantity converts operator input into liters.
func ParseQuantity(raw string) (float64, error) {
	quantity, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, ErrInvalidQuantity
	}
	return quantity, nil
}

// FillWholeMonth replaces every entry with one default delivery per day of the month.
func (s *Sheet) FillWholeMonth() {
	entries := make(map[string]float64, s.month.Days())
	for day := 1; day <= s.month.Days(); day++ {
		entries[s.month.DateKey(day)] = DefaultQuantity
	}
	s.entries = entries
}

// SetWholeMonth fills the month when switched on and clears it when switched off.
func (s *Sheet) SetWholeMonth(on bool) {
	s.wholeMonth = on
	if on {
		s.FillWholeMonth()
		return
	}
	s.Clear()
}

// Clear removes every entry.
func (s *Sheet) Clear() {
	s.entries = make(map[string]float64)
}

// Reset clears the entries and the whole month toggle.
func (s *Sheet) Reset() {
	s.wholeMonth = false
	s.Clear()
}

// NextMonth moves to the following month and resets the sheet.
func (s *Sheet) NextMonth() {
	s.setMonth(s.month.Next())
}

// PrevMonth moves to the preceding month and resets the sheet.
func (s *Sheet) PrevMonth() {
	s.setMonth(s.month.Prev())
}

func (s *Sheet) setMonth(month Month) {
	s.month = month
	s.Reset()
}

// Quantity returns the quantity recorded for date.
func (s *Sheet) Quantity(date string) (float64, bool) {
	q, ok := s.entries[date]
	return q, ok
}

// Len returns the number of delivery days.
func (s *Sheet) Len() int {
	return len(s.entries)
}

// Entries returns the entries in ascending date order.
func (s *Sheet) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for date, q := range s.entries {
		entries = append(entries, Entry{Date: date, Quantity: q})
	}
	SortEntries(entries)
	return entries
}

// Totals derives the bill totals for the given price per liter.
func (s *Sheet) Totals(price float64) Totals {
	return Calculate(s.Entries(), price)
}

// SortEntries orders entries by ascending date.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
