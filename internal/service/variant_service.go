package service

import (
	"context"
	"errors"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantService interface {
	Create(ctx context.Context, acting Actor, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error)
	Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.VariantResponse, error)
	ListByProduct(ctx context.Context, acting Actor, productID uuid.UUID) ([]dto.VariantResponse, error)
	Update(ctx context.Context, acting Actor, id uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error)
	Delete(ctx context.Context, acting Actor, id uuid.UUID) error
}

type variantService struct {
	repo     repository.VariantRepository
	products repository.ProductRepository
}

func NewVariantService(repo repository.VariantRepository, products repository.ProductRepository) VariantService {
	return &variantService{repo: repo, products: products}
}

// Create persists a new variant under an existing product. This is the only
// moment SKU generation runs: the parent product is persisted (its code is
// DB-assigned), so BuildSKU has everything it needs, and the resulting SKU is
// frozen for the variant's lifetime.
func (s *variantService) Create(ctx context.Context, acting Actor, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := s.products.FindByID(ctx, productID, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product")
		}
		return nil, err
	}
	if req.StockQuantity < 0 {
		return nil, apierror.Invalid("stock_quantity", "stock quantity must not be negative")
	}

	n, err := s.repo.CountByProductAndName(ctx, product.ID, req.VariantName)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apierror.Conflict("variant %q already exists for this product", req.VariantName)
	}

	categoryName := ""
	if product.Category != nil {
		categoryName = product.Category.Name
	}

	threshold := 5
	if req.ReorderThreshold != nil {
		if *req.ReorderThreshold < 0 {
			return nil, apierror.Invalid("reorder_threshold", "reorder threshold must not be negative")
		}
		threshold = *req.ReorderThreshold
	}

	v := &model.Variant{
		ProductID:        product.ID,
		VariantName:      req.VariantName,
		Size:             req.Size,
		Color:            req.Color,
		StockQuantity:    req.StockQuantity,
		ReorderThreshold: threshold,
		SKU:              BuildSKU(categoryName, product.Code, req.Size, req.Color),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	v.Product = product
	return variantToResponse(v), nil
}

func (s *variantService) Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.VariantResponse, error) {
	v, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("variant")
		}
		return nil, err
	}
	return variantToResponse(v), nil
}

func (s *variantService) ListByProduct(ctx context.Context, acting Actor, productID uuid.UUID) ([]dto.VariantResponse, error) {
	if _, err := s.products.FindByID(ctx, productID, acting.Scope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product")
		}
		return nil, err
	}
	variants, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		result = append(result, *variantToResponse(&v))
	}
	return result, nil
}

// Update changes descriptive fields only. The SKU is never touched, not even
// when color or size change. Stock is off limits here: quantity changes go
// through the stock ledger so they always leave an audit row.
func (s *variantService) Update(ctx context.Context, acting Actor, id uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	v, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("variant")
		}
		return nil, err
	}

	if req.VariantName != nil && *req.VariantName != v.VariantName {
		n, err := s.repo.CountByProductAndName(ctx, v.ProductID, *req.VariantName)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apierror.Conflict("variant %q already exists for this product", *req.VariantName)
		}
		v.VariantName = *req.VariantName
	}
	if req.Size != nil {
		v.Size = req.Size
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.ReorderThreshold != nil {
		if *req.ReorderThreshold < 0 {
			return nil, apierror.Invalid("reorder_threshold", "reorder threshold must not be negative")
		}
		v.ReorderThreshold = *req.ReorderThreshold
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return variantToResponse(v), nil
}

// Delete removes a variant and its audit history (cascade), unless sale
// history exists: sales restrict-delete their variant.
func (s *variantService) Delete(ctx context.Context, acting Actor, id uuid.UUID) error {
	v, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("variant")
		}
		return err
	}
	n, err := s.repo.CountSales(ctx, v.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("variant has %d recorded sales and cannot be deleted", n)
	}
	return s.repo.Delete(ctx, v.ID)
}

func variantToResponse(v *model.Variant) *dto.VariantResponse {
	resp := &dto.VariantResponse{
		ID:               v.ID.String(),
		ProductID:        v.ProductID.String(),
		VariantName:      v.VariantName,
		Size:             v.Size,
		Color:            v.Color,
		StockQuantity:    v.StockQuantity,
		ReorderThreshold: v.ReorderThreshold,
		SKU:              v.SKU,
		IsLowStock:       v.IsLowStock(),
	}
	if v.Product != nil {
		resp.ProductName = v.Product.Name
	}
	if v.LastUpdatedByID != nil {
		id := v.LastUpdatedByID.String()
		resp.LastUpdatedByID = &id
	}
	return resp
}
