package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManualOrder is an operator-entered order that never touched the store,
// kept so commissions can still be assigned against it.
type ManualOrder struct {
	ID            string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VendorID      string          `json:"vendor_id" gorm:"type:uuid"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (o *ManualOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
