package billing

import (
	"errors"

	"github.com/samber/lo"
)

// Totals are the values derived from a set of entries and a price per liter.
// Amount is the raw product; rounding happens only when it is presented.
type Totals struct {
	Days          int     `json:"days"`
	Quantity      float64 `json:"total_quantity"`
	PricePerLiter float64 `json:"price_per_liter"`
	Amount        float64 `json:"total_amount"`
}

// Calculate sums the delivered liters and multiplies them by price.
func Calculate(entries []Entry, price float64) Totals {
	quantity := lo.SumBy(entries, func(e Entry) float64 { return e.Quantity })
	return Totals{
		Days:          len(entries),
		Quantity:      quantity,
		PricePerLiter: price,
		Amount:        quantity * price,
	}
}

// ErrNoDeliveries is returned by operations that need at least one delivery day.
var ErrNoDeliveries = errors.New("no delivery days selected")
