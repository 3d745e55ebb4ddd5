package service

import (
	"context"
	"errors"
	"time"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transitions maps each order status to the set of statuses it may move to.
// The table is explicit and injectable rather than implicit in scattered
// checks; terminal states simply have no outgoing edges.
type Transitions map[string][]string

// DefaultTransitions: pending → {in_progress, completed, cancelled};
// in_progress → {completed, cancelled}; completed and cancelled are terminal.
func DefaultTransitions() Transitions {
	return Transitions{
		model.OrderPending:    {model.OrderInProgress, model.OrderCompleted, model.OrderCancelled},
		model.OrderInProgress: {model.OrderCompleted, model.OrderCancelled},
		model.OrderCompleted:  {},
		model.OrderCancelled:  {},
	}
}

// recognized reports whether value is one of the four order statuses,
// independent of whether any transition reaches it.
func (t Transitions) recognized(value string) bool {
	if _, ok := t[value]; ok {
		return true
	}
	for _, targets := range t {
		for _, target := range targets {
			if target == value {
				return true
			}
		}
	}
	return false
}

func (t Transitions) allowed(from, to string) bool {
	for _, target := range t[from] {
		if target == to {
			return true
		}
	}
	return false
}

type OrderService interface {
	Create(ctx context.Context, acting Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, acting Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, acting Actor, id uuid.UUID, newStatus string) (*dto.OrderResponse, error)
}

type orderService struct {
	repo        repository.OrderRepository
	products    repository.ProductRepository
	transitions Transitions
}

// NewOrderService builds the order workflow. A nil transitions table selects
// DefaultTransitions.
func NewOrderService(repo repository.OrderRepository, products repository.ProductRepository, transitions Transitions) OrderService {
	if transitions == nil {
		transitions = DefaultTransitions()
	}
	return &orderService{repo: repo, products: products, transitions: transitions}
}

func (s *orderService) Create(ctx context.Context, acting Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Invalid("product_id", "invalid product id")
	}
	product, err := s.products.FindByID(ctx, productID, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product")
		}
		return nil, err
	}

	order := &model.Order{
		ProductID:    product.ID,
		CustomerName: req.CustomerName,
		DesignSpecs:  req.DesignSpecs,
		Status:       model.OrderPending,
		CreatedByID:  acting.ID,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Product = product
	return orderToResponse(order), nil
}

func (s *orderService) Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("order")
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, acting Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Status != "" && !s.transitions.recognized(filter.Status) {
		return nil, &apierror.InvalidStatus{Value: filter.Status}
	}
	orders, total, err := s.repo.List(ctx, acting.Scope(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *orderToResponse(&o))
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, acting Actor, id uuid.UUID, newStatus string) (*dto.OrderResponse, error) {
	if !s.transitions.recognized(newStatus) {
		return nil, &apierror.InvalidStatus{Value: newStatus}
	}
	order, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("order")
		}
		return nil, err
	}
	if order.Status == newStatus {
		return orderToResponse(order), nil
	}
	if !s.transitions.allowed(order.Status, newStatus) {
		return nil, &apierror.InvalidTransition{From: order.Status, To: newStatus}
	}
	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	return orderToResponse(order), nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:           o.ID.String(),
		ProductID:    o.ProductID.String(),
		CustomerName: o.CustomerName,
		DesignSpecs:  o.DesignSpecs,
		Status:       o.Status,
		CreatedByID:  o.CreatedByID.String(),
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    o.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	return resp
}
