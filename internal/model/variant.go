package model

import "github.com/google/uuid"

// Variant is a purchasable configuration (color/size) of a product with its
// own stock count. The SKU is assigned exactly once at creation and never
// regenerated, even if category, color or size change afterwards.
type Variant struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_variant_name"`
	VariantName      string    `gorm:"not null;uniqueIndex:idx_product_variant_name"`
	Size             *string   `gorm:"type:varchar(10)"`
	Color            string    `gorm:"type:varchar(20);not null"`
	StockQuantity    int       `gorm:"not null;default:0;check:chk_variants_stock_quantity,stock_quantity >= 0"`
	ReorderThreshold int       `gorm:"not null;default:5;check:chk_variants_reorder_threshold,reorder_threshold >= 0"`
	SKU              string    `gorm:"column:sku;type:varchar(50);uniqueIndex;not null"`
	LastUpdatedByID  *uuid.UUID `gorm:"type:uuid"`

	Product       *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	LastUpdatedBy *User    `gorm:"foreignKey:LastUpdatedByID;constraint:OnDelete:SET NULL"`
}

// IsLowStock is derived state, recomputed on every read and never stored.
func (v *Variant) IsLowStock() bool {
	return v.StockQuantity < v.ReorderThreshold
}
