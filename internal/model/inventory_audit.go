package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit sources are passed explicitly by the caller, never inferred after the
// fact from related rows.
const (
	AuditSourceSale       = "sale"
	AuditSourceManual     = "manual_adjustment"
	AuditSourceCorrection = "correction"
)

// InventoryAudit records one stock-quantity change on a variant. Rows are
// append-only: never updated or deleted by normal operation. Deleting the
// acting user keeps the row (acting_user_id goes NULL); deleting the variant
// cascades.
type InventoryAudit struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActingUserID *uuid.UUID `gorm:"type:uuid"`
	OldQuantity  int        `gorm:"not null"`
	NewQuantity  int        `gorm:"not null"`
	Source       string     `gorm:"type:varchar(20);not null"`
	Reason       string     `gorm:"not null"`
	SaleID       *uuid.UUID `gorm:"type:uuid"` // set when the change came from a sale
	CreatedAt    time.Time

	Variant    *Variant `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	ActingUser *User    `gorm:"foreignKey:ActingUserID;constraint:OnDelete:SET NULL"`
}

// TableName overrides GORM's pluralization (inventory_audits reads better
// than the default).
func (InventoryAudit) TableName() string { return "inventory_audits" }

// DefaultReason returns the system-chosen reason label for a source when the
// caller does not supply one.
func DefaultReason(source string) string {
	switch source {
	case AuditSourceSale:
		return "Sale"
	case AuditSourceCorrection:
		return "Correction"
	default:
		return "Manual adjustment"
	}
}
