package models

import "time"

// BillRecord is the immutable snapshot persisted once per submission.
type BillRecord struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName  string    `json:"customer_name" bson:"customer_name" gorm:"column:customer_name;not null"`
	MobileNumber  string    `json:"mobile_number" bson:"mobile_number" gorm:"column:mobile_number;size:10;index;not null"`
	BillingPeriod string    `json:"billing_period" bson:"billing_period" gorm:"column:billing_period;index;not null"`
	MilkQuantity  float64   `json:"milk_quantity" bson:"milk_quantity" gorm:"column:milk_quantity"`
	PricePerLiter float64   `json:"price_per_liter" bson:"price_per_liter" gorm:"column:price_per_liter"`
	TotalAmount   float64   `json:"total_amount" bson:"total_amount" gorm:"column:total_amount"`
	CreatedAt     time.Time `json:"created_at,omitempty" bson:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the gorm table to the shared bill_details table.
func (BillRecord) TableName() string { return "bill_details" }
