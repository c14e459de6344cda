package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/config"
)

var march2024 = billing.Month{Year: 2024, Month: time.March}

func testGenerator() *Generator {
	g := NewGenerator(config.BillingConfig{
		BusinessName: "Shreenathji Gir Gaushala",
		Tagline:      "Fresh Milk Delivery Service",
		ProductName:  "Fresh Gir Cow Milk",
	}, "91")
	g.compress = false
	return g
}

func TestLayout(t *testing.T) {
	cells, rows := Layout(march2024, []billing.Entry{
		{Date: "2024-03-05", Quantity: 1},
		{Date: "2024-03-20", Quantity: 2},
	})

	require.Len(t, cells, 31)
	assert.Equal(t, 6, rows)

	tests := []struct {
		day      int
		row, col int
		quantity float64
	}{
		{day: 1, row: 0, col: 5},
		{day: 2, row: 0, col: 6},
		{day: 3, row: 1, col: 0},
		{day: 5, row: 1, col: 2, quantity: 1},
		{day: 20, row: 3, col: 3, quantity: 2},
		{day: 31, row: 5, col: 0},
	}
	for _, tt := range tests {
		c := cells[tt.day-1]
		assert.Equal(t, tt.day, c.Day)
		assert.Equal(t, tt.row, c.Row, "row of day %d", tt.day)
		assert.Equal(t, tt.col, c.Col, "col of day %d", tt.day)
		assert.Equal(t, tt.quantity, c.Quantity, "quantity of day %d", tt.day)
		assert.Equal(t, tt.quantity > 0, c.Delivered())
	}
}

func TestLayoutRows(t *testing.T) {
	tests := []struct {
		month billing.Month
		rows  int
	}{
		{billing.Month{Year: 2015, Month: time.February}, 4}, // starts on Sunday, 28 days
		{billing.Month{Year: 2024, Month: time.February}, 5},
		{billing.Month{Year: 2024, Month: time.June}, 6}, // starts on Saturday
	}
	for _, tt := range tests {
		t.Run(tt.month.Label(), func(t *testing.T) {
			_, rows := Layout(tt.month, nil)
			assert.Equal(t, tt.rows, rows)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Asha March Bill.pdf", FileName("Asha", march2024))
	assert.Equal(t, "Customer March Bill.pdf", FileName("", march2024))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := testGenerator().Render(&buf, billing.Bill{
		CustomerName:  "Asha",
		MobileNumber:  "9876543210",
		Month:         march2024,
		PricePerLiter: 60,
		Entries: []billing.Entry{
			{Date: "2024-03-20", Quantity: 2},
			{Date: "2024-03-05", Quantity: 1},
			{Date: "2024-03-12", Quantity: 1},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "Daily Delivery Schedule")
	assert.Contains(t, out, "Rs. 240.00")
	assert.Contains(t, out, "Phone: +919876543210")
	assert.Contains(t, out, "Total Quantity: 4.0 L")
	assert.Contains(t, out, "Page 2 of 2")
}

func TestRenderWithoutDeliveries(t *testing.T) {
	var buf bytes.Buffer
	err := testGenerator().Render(&buf, billing.Bill{Month: march2024})
	require.ErrorIs(t, err, billing.ErrNoDeliveries)
	assert.Zero(t, buf.Len())
}
