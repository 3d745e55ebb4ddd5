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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, acting Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, acting Actor, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, acting Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, acting Actor, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	variants   repository.VariantRepository
	rdb        *redis.Client
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, variants repository.VariantRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, categories: categories, variants: variants, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, acting Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !req.Price.IsPositive() {
		return nil, apierror.Invalid("price", "price must be greater than zero")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Invalid("category_id", "invalid category id")
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("category")
		}
		return nil, err
	}

	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  category.ID,
		Price:       req.Price.Round(2),
		OwnerID:     acting.ID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Category = category
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, acting Actor, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product")
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, acting Actor, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, acting.Scope(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *productToResponse(&p))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, acting Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("product")
		}
		return nil, err
	}

	priceChanged := false
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Invalid("category_id", "invalid category id")
		}
		category, err := s.categories.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NewNotFound("category")
			}
			return nil, err
		}
		p.CategoryID = category.ID
		p.Category = category
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apierror.Invalid("price", "price must be greater than zero")
		}
		p.Price = req.Price.Round(2)
		priceChanged = true
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Best-effort cache invalidation for the public price-lookup endpoint.
	if priceChanged && s.rdb != nil {
		if err := s.invalidatePriceCache(ctx, p.ID); err != nil {
			log.Warn().Err(err).Str("product_id", p.ID.String()).Msg("price cache invalidation failed")
		}
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, acting Actor, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("product")
		}
		return err
	}
	n, err := s.repo.CountSales(ctx, p.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("product has variants with %d recorded sales and cannot be deleted", n)
	}
	return s.repo.Delete(ctx, p.ID)
}

func (s *productService) invalidatePriceCache(ctx context.Context, productID uuid.UUID) error {
	variants, err := s.variants.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(variants))
	for _, v := range variants {
		keys = append(keys, "price:"+v.SKU)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID.String(),
		Price:       p.Price,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
