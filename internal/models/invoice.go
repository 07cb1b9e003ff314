package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID          string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VendorID    string          `json:"vendor_id" gorm:"type:uuid;not null"`
	Number      string          `json:"number" gorm:"unique;not null"`
	PeriodStart *time.Time      `json:"period_start"`
	PeriodEnd   *time.Time      `json:"period_end"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	Status      InvoiceStatus   `json:"status" gorm:"default:ISSUED"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "ISSUED"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
	InvoiceStatusVoid   InvoiceStatus = "VOID"
)

// NextInvoiceNumber builds a unique, human-sortable invoice number.
func NextInvoiceNumber(at time.Time) string {
	return fmt.Sprintf("INV-%s-%s", at.Format("200601"), uuid.New().String()[:8])
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
