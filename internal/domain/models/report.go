package models

// MonthlySummary aggregates the bill records of a single billing period.
type MonthlySummary struct {
	BillingPeriod string  `json:"billing_period"`
	Bills         int     `json:"bills"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}
