package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SheetRow is the denormalized copy of a bill forwarded to the spreadsheet.
type SheetRow struct {
	CustomerName  string `json:"customerName"`
	MobileNumber  string `json:"mobileNumber"`
	BillingPeriod string `json:"billingPeriod"`
	MilkQuantity  Amount `json:"milkQuantity"`
	PricePerLiter Amount `json:"pricePerLiter"`
	TotalAmount   Amount `json:"totalAmount"`
}

// Values returns the row in spreadsheet column order.
func (r SheetRow) Values() []interface{} {
	return []interface{}{
		r.CustomerName,
		r.MobileNumber,
		r.BillingPeriod,
		string(r.MilkQuantity),
		string(r.PricePerLiter),
		string(r.TotalAmount),
	}
}

// Amount is a decimal rendered as text. It decodes from either a JSON string
// or a JSON number and always encodes as a string.
type Amount string

// FixedAmount formats v with two decimals.
func FixedAmount(v float64) Amount {
	return Amount(strconv.FormatFloat(v, 'f', 2, 64))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}
