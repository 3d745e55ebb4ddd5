package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const priceCacheTTL = 5 * time.Minute

type AlertService interface {
	ListAlerts(ctx context.Context, actor Actor, filter dto.AlertFilter) ([]dto.AlertResponse, int64, error)
	ResolveAlert(ctx context.Context, actor Actor, id uuid.UUID) error
	// LookupPrice serves the unauthenticated price check endpoint. Results are
	// cached in Redis keyed by SKU; mutations on the product invalidate the key.
	LookupPrice(ctx context.Context, sku string) (*dto.PriceLookupResponse, error)
}

type alertService struct {
	repo     repository.AlertRepository
	variants repository.VariantRepository
	rdb      *redis.Client
}

func NewAlertService(repo repository.AlertRepository, variants repository.VariantRepository, rdb *redis.Client) AlertService {
	return &alertService{repo: repo, variants: variants, rdb: rdb}
}

func (s *alertService) ListAlerts(ctx context.Context, actor Actor, filter dto.AlertFilter) ([]dto.AlertResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	alerts, total, err := s.repo.List(ctx, actor.Scope(), filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		a := alerts[i]
		resp := dto.AlertResponse{
			ID:         a.ID.String(),
			VariantID:  a.VariantID.String(),
			Message:    a.Message,
			IsResolved: a.IsResolved,
			CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		}
		if a.Variant != nil {
			resp.VariantSKU = a.Variant.SKU
		}
		out = append(out, resp)
	}
	return out, total, nil
}

func (s *alertService) ResolveAlert(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, actor.Scope(), id); err != nil {
		return apierror.NewNotFound("alert")
	}
	return s.repo.Resolve(ctx, id)
}

func (s *alertService) LookupPrice(ctx context.Context, sku string) (*dto.PriceLookupResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, "price:"+sku).Result(); err == nil {
			var resp dto.PriceLookupResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	variant, err := s.variants.FindBySKU(ctx, sku)
	if err != nil {
		return nil, apierror.NewNotFound("variant")
	}
	resp := &dto.PriceLookupResponse{
		SKU:         variant.SKU,
		VariantName: variant.VariantName,
		InStock:     variant.StockQuantity > 0,
	}
	if variant.Product != nil {
		resp.ProductName = variant.Product.Name
		resp.Price = variant.Product.Price.StringFixed(2)
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, "price:"+sku, payload, priceCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("sku", sku).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}
