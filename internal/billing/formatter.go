package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	dayChunkSize        = 8
	defaultTextCustomer = "Valued Customer"
)

// TextInput carries everything the messaging bill is rendered from.
type TextInput struct {
	CustomerName string
	Month        Month
	Entries      []Entry
	Totals       Totals
}

// FormatText renders the bill as a WhatsApp-flavoured message. Quantity-one
// deliveries are listed as day numbers, eight per line; any other quantity is
// listed on its own line.
func FormatText(in TextInput) string {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = defaultTextCustomer
	}

	entries := append([]Entry(nil), in.Entries...)
	SortEntries(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "🐄 *Milk Bill - %s %d* 🐄\n\n", in.Month.Name(), in.Month.Year)
	fmt.Fprintf(&b, "Hi *%s*,\n\n", name)
	b.WriteString("*Summary*\n")
	fmt.Fprintf(&b, "Total Milk: *%.2f L*\n", in.Totals.Quantity)
	fmt.Fprintf(&b, "Total Amount: *₹%.2f*\n", in.Totals.Amount)
	fmt.Fprintf(&b, "(Rate: ₹%.2f/L)\n\n", in.Totals.PricePerLiter)

	if len(entries) > 0 {
		standard := lo.Filter(entries, func(e Entry, _ int) bool { return e.Quantity == DefaultQuantity })
		special := lo.Reject(entries, func(e Entry, _ int) bool { return e.Quantity == DefaultQuantity })

		if len(special) == 0 {
			b.WriteString("*Delivery Dates (1L each)*\n")
			b.WriteString(strings.Join(ChunkDays(entryDays(standard)), "\n"))
		} else {
			b.WriteString("*Bill Details*\n")
			for _, e := range special {
				fmt.Fprintf(&b, "  - Date %d: *%sL*\n", e.Day(), FormatLiters(e.Quantity))
			}
			if len(standard) > 0 {
				b.WriteString("*Standard Delivery (1L each):*\n")
				b.WriteString(strings.Join(ChunkDays(entryDays(standard)), "\n"))
			}
		}
		b.WriteString("\n\n")
	}

	b.WriteString("Thank you! 🙏")
	return b.String()
}

// ChunkDays joins day numbers into lines of at most eight comma separated values.
func ChunkDays(days []int) []string {
	return lo.Map(lo.Chunk(days, dayChunkSize), func(chunk []int, _ int) string {
		return strings.Join(lo.Map(chunk, func(d int, _ int) string { return strconv.Itoa(d) }), ", ")
	})
}

// FormatLiters prints a quantity with the shortest exact representation, e.g. 2, 1.5, 0.25.
func FormatLiters(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func entryDays(entries []Entry) []int {
	return lo.Map(entries, func(e Entry, _ int) int { return e.Day() })
}
