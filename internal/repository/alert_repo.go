package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, a *model.StockAlert) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.StockAlert, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.AlertFilter) ([]model.StockAlert, int64, error)
	// HasUnresolved lets the alert worker avoid stacking duplicate alerts for
	// a variant that is still low.
	HasUnresolved(ctx context.Context, variantID uuid.UUID) (bool, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type alertRepo struct{ db *gorm.DB }

func NewAlertRepository(db *gorm.DB) AlertRepository { return &alertRepo{db: db} }

func (r *alertRepo) Create(ctx context.Context, a *model.StockAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alertRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.StockAlert, error) {
	q := r.db.WithContext(ctx).Where("stock_alerts.id = ?", id)
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN variants ON variants.id = stock_alerts.variant_id").
			Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	var a model.StockAlert
	if err := q.First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.AlertFilter) ([]model.StockAlert, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockAlert{})
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN variants ON variants.id = stock_alerts.variant_id").
			Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	switch filter.Resolved {
	case "true":
		q = q.Where("stock_alerts.is_resolved = true")
	case "false":
		q = q.Where("stock_alerts.is_resolved = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var alerts []model.StockAlert
	err := q.Preload("Variant").
		Order("stock_alerts.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&alerts).Error
	return alerts, total, err
}

func (r *alertRepo) HasUnresolved(ctx context.Context, variantID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.StockAlert{}).
		Where("variant_id = ? AND is_resolved = false", variantID).Count(&n).Error
	return n > 0, err
}

func (r *alertRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.StockAlert{}).Where("id = ?", id).Update("is_resolved", true).Error
}
