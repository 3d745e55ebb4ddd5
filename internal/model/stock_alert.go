package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAlert is a persisted low-stock notification, produced asynchronously
// by the alert worker after a ledger mutation leaves a variant below its
// reorder threshold. Alerting is derived from ledger state and is never part
// of the mutation transaction.
type StockAlert struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Message    string    `gorm:"not null"`
	IsResolved bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Variant *Variant `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}
