package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Vendor struct {
	ID             string          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string          `json:"name" gorm:"not null"`
	ShopDomain     string          `json:"shop_domain"`
	AccessToken    string          `json:"-"`
	CommissionRate decimal.Decimal `json:"commission_rate" gorm:"type:decimal(5,4)"`
	Status         VendorStatus    `json:"status" gorm:"default:ACTIVE"`
	LastSync       *time.Time      `json:"last_sync"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
