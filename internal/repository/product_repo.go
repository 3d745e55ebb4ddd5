package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Read methods take an ownerID scope: uuid.Nil means unscoped (admin).
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Product, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountSales counts sales across all of the product's variants; a
	// product whose variants have sale history cannot be deleted.
	CountSales(ctx context.Context, id uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Product, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if ownerID != uuid.Nil {
		q = q.Where("owner_id = ?", ownerID)
	}
	var p model.Product
	if err := q.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if ownerID != uuid.Nil {
		q = q.Where("owner_id = ?", ownerID)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var products []model.Product
	err := q.Preload("Category").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

// Update names the editable columns; code and owner_id are immutable after
// creation and never travel back to the database.
func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Model(p).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"category_id": p.CategoryID,
		"price":       p.Price,
	}).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Variants go with the product (FK ON DELETE CASCADE); callers must run
	// the sale-history check first.
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountSales(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Joins("JOIN variants ON variants.id = sales.variant_id").
		Where("variants.product_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
