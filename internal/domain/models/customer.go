package models

// Customer is the directory entry used to prefill the billing form. The mobile
// number is the natural key; the id is assigned by the backing store.
type Customer struct {
	ID           string `json:"id" bson:"_id,omitempty" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string `json:"name" bson:"name" gorm:"column:name;size:255;not null"`
	MobileNumber string `json:"mobile_number" bson:"mobile_number" gorm:"column:mobile_number;size:10;uniqueIndex;not null"`
}

// TableName pins the gorm table to the shared customers table.
func (Customer) TableName() string { return "customers" }
