package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx persists a sale inside the caller's transaction. A sale row
	// never exists outside the compound write that also moves stock.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Sale, error) {
	q := r.db.WithContext(ctx).Preload("Variant.Product")
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN variants ON variants.id = sales.variant_id").
			Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	var s model.Sale
	if err := q.First(&s, "sales.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN variants ON variants.id = sales.variant_id").
			Joins("JOIN products ON products.id = variants.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	if filter.VariantID != "" {
		q = q.Where("sales.variant_id = ?", filter.VariantID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(sales.sale_date) = ?", filter.Date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var sales []model.Sale
	err := q.Preload("Variant.Product").
		Order("sales.sale_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
