package billing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDateOutsideMonth is returned when a delivery date does not belong to the billed month.
var ErrDateOutsideMonth = errors.New("delivery date outside billed month")

// Bill is a customer's deliveries for one month priced at a fixed rate.
type Bill struct {
	CustomerName  string
	MobileNumber  string
	Month         Month
	Entries       []Entry
	PricePerLiter float64
}

// Bill snapshots the sheet for the given customer and price.
func (s *Sheet) Bill(customerName, mobileNumber string, price float64) Bill {
	return Bill{
		CustomerName:  customerName,
		MobileNumber:  mobileNumber,
		Month:         s.month,
		Entries:       s.Entries(),
		PricePerLiter: price,
	}
}

// Totals derives the bill totals.
func (b Bill) Totals() Totals {
	return Calculate(b.Entries, b.PricePerLiter)
}

// Text renders the messaging version of the bill.
func (b Bill) Text() string {
	return FormatText(TextInput{
		CustomerName: b.CustomerName,
		Month:        b.Month,
		Entries:      b.Entries,
		Totals:       b.Totals(),
	})
}

// EntriesFromDeliveries converts a date to liters map into sorted entries of
// month. Non-positive quantities mean no delivery and are dropped.
func EntriesFromDeliveries(month Month, deliveries map[string]float64) ([]Entry, error) {
	sheet := NewSheet(month)
	for date, quantity := range deliveries {
		date = strings.TrimSpace(date)
		if !month.Contains(date) {
			return nil, fmt.Errorf("%w: %q is not in %s", ErrDateOutsideMonth, date, month.Label())
		}
		sheet.SetQuantity(date, quantity)
	}
	return sheet.Entries(), nil
}
