package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/infra"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the sale processor. RecordSale is the single place in the
// system where a multi-entity write must be transactional: sale row, stock
// decrement, and audit row commit together or not at all.
type SaleService interface {
	RecordSale(ctx context.Context, acting Actor, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, acting Actor, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, acting Actor, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	// ReceiptPath renders (or reuses) the PDF receipt for a sale and returns
	// its filesystem path.
	ReceiptPath(ctx context.Context, acting Actor, id uuid.UUID) (string, error)
}

type saleService struct {
	repo     repository.SaleRepository
	variants repository.VariantRepository
	products repository.ProductRepository
	stock    StockService
	notifier LowStockNotifier
	pdfDir   string
}

func NewSaleService(
	repo repository.SaleRepository,
	variants repository.VariantRepository,
	products repository.ProductRepository,
	stock StockService,
	notifier LowStockNotifier,
	pdfDir string,
) SaleService {
	return &saleService{repo: repo, variants: variants, products: products, stock: stock, notifier: notifier, pdfDir: pdfDir}
}

// RecordSale:
//  1. Validate quantity > 0
//  2. BEGIN TX: lock variant row, check stock suffices, compute total from
//     the product's current price, create sale, decrement stock through the
//     ledger (which appends the audit row)
//  3. COMMIT
//  4. (async, best-effort) low-stock alert if the decrement crossed the threshold
func (s *saleService) RecordSale(ctx context.Context, acting Actor, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if req.QuantitySold <= 0 {
		return nil, apierror.Invalid("quantity_sold", "quantity sold must be positive")
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		return nil, apierror.Invalid("variant_id", "invalid variant id")
	}

	// Resolve the variant and its product up front for ownership and price.
	// Stock is re-read under lock inside the transaction; price races are
	// acceptable (the price at the moment of sale is whatever this read saw).
	preflight, err := s.variants.FindByID(ctx, variantID, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("variant")
		}
		return nil, err
	}
	product, err := s.products.FindByID(ctx, preflight.ProductID, acting.Scope())
	if err != nil {
		return nil, err
	}

	var sale model.Sale
	var variant *model.Variant
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		v, err := s.variants.FindByIDForUpdateTx(tx, variantID)
		if err != nil {
			return err
		}
		if v.StockQuantity < req.QuantitySold {
			return &apierror.InsufficientStock{Requested: req.QuantitySold, Available: v.StockQuantity}
		}

		sale = model.Sale{
			VariantID:    v.ID,
			QuantitySold: req.QuantitySold,
			TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(req.QuantitySold))),
			SoldByID:     acting.ID,
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		saleID := sale.ID
		reason := fmt.Sprintf("Sale of %d × %s", req.QuantitySold, v.SKU)
		if _, err := s.stock.SetQuantityTx(tx, v, v.StockQuantity-req.QuantitySold, acting, model.AuditSourceSale, reason, &saleID); err != nil {
			return err
		}
		variant = v
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if variant.IsLowStock() && s.notifier != nil {
		s.notifier.NotifyLowStock(ctx, variant.ID)
	}

	resp := saleToResponse(&sale)
	resp.VariantSKU = variant.SKU
	resp.ProductName = product.Name
	resp.StockRemaining = variant.StockQuantity
	resp.LowStock = variant.IsLowStock()
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, acting Actor, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("sale")
		}
		return nil, err
	}
	resp := saleToResponse(sale)
	if sale.Variant != nil {
		resp.VariantSKU = sale.Variant.SKU
		resp.StockRemaining = sale.Variant.StockQuantity
		resp.LowStock = sale.Variant.IsLowStock()
		if sale.Variant.Product != nil {
			resp.ProductName = sale.Variant.Product.Name
		}
	}
	return resp, nil
}

func (s *saleService) ListSales(ctx context.Context, acting Actor, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, acting.Scope(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, sl := range sales {
		resp := saleToResponse(&sl)
		if sl.Variant != nil {
			resp.VariantSKU = sl.Variant.SKU
			resp.StockRemaining = sl.Variant.StockQuantity
			resp.LowStock = sl.Variant.IsLowStock()
			if sl.Variant.Product != nil {
				resp.ProductName = sl.Variant.Product.Name
			}
		}
		items = append(items, *resp)
	}
	return &dto.SaleListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *saleService) ReceiptPath(ctx context.Context, acting Actor, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id, acting.Scope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierror.NewNotFound("sale")
		}
		return "", err
	}
	return infra.GenerateReceiptPDF(sale, s.pdfDir)
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           s.ID.String(),
		VariantID:    s.VariantID.String(),
		QuantitySold: s.QuantitySold,
		TotalPrice:   s.TotalPrice,
		SoldByID:     s.SoldByID.String(),
		SaleDate:     s.SaleDate.UTC().Format(time.RFC3339),
	}
}
