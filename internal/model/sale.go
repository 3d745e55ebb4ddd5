package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records a completed sale of one variant. TotalPrice is computed from
// the product's price at the moment of sale and stored, so later price changes
// never affect past sales. Variants with sales cannot be deleted
// (restrict-delete preserves sale history).
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantitySold int             `gorm:"not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SoldByID     uuid.UUID       `gorm:"type:uuid;not null"`
	SaleDate     time.Time       `gorm:"autoCreateTime"`

	Variant *Variant `gorm:"foreignKey:VariantID;constraint:OnDelete:RESTRICT"`
	SoldBy  *User    `gorm:"foreignKey:SoldByID"`
}
