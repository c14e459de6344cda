package invoice

import (
	"fmt"

	"github.com/mamadbah2/milkbill/internal/billing"
)

// Cell is one day of the delivery schedule grid.
type Cell struct {
	Day      int
	Row      int
	Col      int
	Quantity float64
}

// Delivered reports whether milk was delivered on the cell's day.
func (c Cell) Delivered() bool {
	return c.Quantity > 0
}

// Layout places every day of month on a Sunday-first weekday grid. It returns
// one cell per day in order and the number of week rows the grid needs.
func Layout(month billing.Month, entries []billing.Entry) ([]Cell, int) {
	quantities := make(map[string]float64, len(entries))
	for _, e := range entries {
		quantities[e.Date] = e.Quantity
	}

	offset := month.FirstWeekday()
	days := month.Days()

	cells := make([]Cell, 0, days)
	for i := 0; i < days; i++ {
		day := i + 1
		cells = append(cells, Cell{
			Day:      day,
			Row:      (offset + i) / 7,
			Col:      (offset + i) % 7,
			Quantity: quantities[month.DateKey(day)],
		})
	}

	return cells, (offset + days + 6) / 7
}

// FileName returns the download name of the invoice, e.g. "Asha March Bill.pdf".
func FileName(customerName string, month billing.Month) string {
	return fmt.Sprintf("%s %s Bill.pdf", customerOrDefault(customerName), month.Name())
}

func customerOrDefault(name string) string {
	if name == "" {
		return "Customer"
	}
	return name
}
