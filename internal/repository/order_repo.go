package repository

import (
	"context"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Order, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Order, error) {
	q := r.db.WithContext(ctx).Preload("Product")
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN products ON products.id = orders.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	var o model.Order
	if err := q.First(&o, "orders.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, ownerID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if ownerID != uuid.Nil {
		q = q.Joins("JOIN products ON products.id = orders.product_id").
			Where("products.owner_id = ?", ownerID)
	}
	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var orders []model.Order
	err := q.Preload("Product").
		Order("orders.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}
