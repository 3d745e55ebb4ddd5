package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository appends and reads inventory audit rows. There is no update
// and no delete: the ledger is append-only by construction.
type AuditRepository interface {
	CreateTx(tx *gorm.DB, a *model.InventoryAudit) error
	List(ctx context.Context, ownerID uuid.UUID, filter dto.AuditFilter) ([]model.InventoryAudit, int64, error)
	CountByVariant(ctx context.Context, variantID uuid.UUID) (int64, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) CreateTx(tx *gorm.DB, a *model.InventoryAudit) error {
	return tx.Create(a).Error
}

func (r *auditRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.AuditFilter) ([]model.InventoryAudit, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.InventoryAudit{})
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN variants ON variants.id = inventory_audits.variant_id").
			Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	if filter.VariantID != "" {
		q = q.Where("inventory_audits.variant_id = ?", filter.VariantID)
	}
	if filter.Source != "" {
		q = q.Where("inventory_audits.source = ?", filter.Source)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var audits []model.InventoryAudit
	err := q.Preload("Variant").
		Order("inventory_audits.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&audits).Error
	return audits, total, err
}

func (r *auditRepo) CountByVariant(ctx context.Context, variantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryAudit{}).
		Where("variant_id = ?", variantID).Count(&n).Error
	return n, err
}
