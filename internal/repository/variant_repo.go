package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariantRepository is the data access contract for variants. All stock
// writes go through the Tx methods so the stock ledger can hold a row lock
// for the whole read-modify-write.
type VariantRepository interface {
	Create(ctx context.Context, v *model.Variant) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Variant, error)
	FindBySKU(ctx context.Context, sku string) (*model.Variant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	// ListLowStock is a single filtered query (backed by a partial index),
	// never a scan-and-filter in application code.
	ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]model.Variant, error)
	Update(ctx context.Context, v *model.Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountSales(ctx context.Context, id uuid.UUID) (int64, error)
	CountByProductAndName(ctx context.Context, productID uuid.UUID, name string) (int64, error)

	// Used inside transactions; callers must pass the tx instance.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Variant, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepository(db *gorm.DB) VariantRepository { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *model.Variant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Variant, error) {
	q := r.db.WithContext(ctx).Preload("Product")
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	var v model.Variant
	if err := q.First(&v, "variants.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) FindBySKU(ctx context.Context, sku string) (*model.Variant, error) {
	var v model.Variant
	err := r.db.WithContext(ctx).Preload("Product").Where("sku = ?", sku).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).
		Order("variant_name ASC").Find(&variants).Error
	return variants, err
}

func (r *variantRepo) ListLowStock(ctx context.Context, ownerID uuid.UUID) ([]model.Variant, error) {
	q := r.db.WithContext(ctx).Preload("Product").
		Where("stock_quantity < reorder_threshold")
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	var variants []model.Variant
	err := q.Order("stock_quantity ASC").Find(&variants).Error
	return variants, err
}

// Update writes descriptive columns only. Stock columns are written solely by
// the Tx methods under lock; a full-row save here could overwrite a ledger
// commit that landed after the caller's read.
func (r *variantRepo) Update(ctx context.Context, v *model.Variant) error {
	return r.db.WithContext(ctx).Model(v).Updates(map[string]interface{}{
		"variant_name":      v.VariantName,
		"size":              v.Size,
		"color":             v.Color,
		"reorder_threshold": v.ReorderThreshold,
	}).Error
}

func (r *variantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Variant{}, "id = ?", id).Error
}

func (r *variantRepo) CountSales(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("variant_id = ?", id).Count(&n).Error
	return n, err
}

func (r *variantRepo) CountByProductAndName(ctx context.Context, productID uuid.UUID, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Variant{}).
		Where("product_id = ? AND variant_name = ?", productID, name).Count(&n).Error
	return n, err
}

// FindByIDForUpdateTx acquires a FOR UPDATE row lock on the variant. Two
// concurrent mutations of the same variant serialize here, which is what
// keeps a pair of racing sales from both reading stale stock.
func (r *variantRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Variant, error) {
	var v model.Variant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy uuid.UUID) error {
	return tx.Model(&model.Variant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock_quantity":     quantity,
		"last_updated_by_id": updatedBy,
	}).Error
}

func (r *variantRepo) DB() *gorm.DB { return r.db }
