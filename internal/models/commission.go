package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Commission struct {
	ID        string           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VendorID  string           `json:"vendor_id" gorm:"type:uuid;not null"`
	OrderID   string           `json:"order_id" gorm:"not null"`
	OrderName string           `json:"order_name"`
	Basis     decimal.Decimal  `json:"basis" gorm:"type:decimal(12,2)"`
	Rate      decimal.Decimal  `json:"rate" gorm:"type:decimal(5,4)"`
	Amount    decimal.Decimal  `json:"amount" gorm:"type:decimal(12,2)"`
	Status    CommissionStatus `json:"status" gorm:"default:PENDING"`
	InvoiceID *string          `json:"invoice_id" gorm:"type:uuid"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "PENDING"
	CommissionStatusBilled  CommissionStatus = "BILLED"
	CommissionStatusPaid    CommissionStatus = "PAID"
)

// ComputeCommission returns the commission owed on a basis amount at the
// given rate, rounded to cents.
func ComputeCommission(basis, rate decimal.Decimal) decimal.Decimal {
	return basis.Mul(rate).Round(2)
}

func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
