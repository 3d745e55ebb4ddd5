package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the unit of tenancy: one owner user, one category, many variants.
// Code is a DB-assigned sequence number: the numeric identity embedded
// in variant SKUs, so it must exist before any variant can be created
// (two-phase create for product+variant requests).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        int64     `gorm:"autoIncrement;uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Owner    *User     `gorm:"foreignKey:OwnerID"`
}
