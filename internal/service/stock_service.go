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

// LowStockNotifier receives a best-effort signal after a committed mutation
// leaves a variant below its reorder threshold. Implementations must not
// block the request path; the worker dispatcher satisfies this.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, variantID uuid.UUID)
}

// StockService is the stock ledger: the sole authority for mutating
// Variant.StockQuantity, and for emitting an audit row for every mutation.
// Direct edits, manual adjustments, and the sale processor all funnel through
// here; there is no other write path to stock.
type StockService interface {
	SetQuantity(ctx context.Context, variantID uuid.UUID, newQuantity int, acting Actor, source, reason string) (*dto.VariantResponse, error)
	AdjustBy(ctx context.Context, variantID uuid.UUID, delta int, acting Actor, source, reason string) (*dto.VariantResponse, error)
	ListAudits(ctx context.Context, acting Actor, filter dto.AuditFilter) (*dto.AuditListResponse, error)
	ListLowStock(ctx context.Context, acting Actor) ([]dto.VariantResponse, error)

	// SetQuantityTx applies one ledger mutation inside the caller's
	// transaction: validates, writes the new quantity, stamps
	// last_updated_by, and appends the audit row. Returns the audit row, or
	// nil when newQuantity equals the current quantity (idempotent no-op).
	// The variant must already be locked FOR UPDATE by the caller.
	SetQuantityTx(tx *gorm.DB, variant *model.Variant, newQuantity int, acting Actor, source, reason string, saleID *uuid.UUID) (*model.InventoryAudit, error)
}

type stockService struct {
	variants repository.VariantRepository
	audits   repository.AuditRepository
	notifier LowStockNotifier
}

func NewStockService(variants repository.VariantRepository, audits repository.AuditRepository, notifier LowStockNotifier) StockService {
	return &stockService{variants: variants, audits: audits, notifier: notifier}
}

func (s *stockService) SetQuantity(ctx context.Context, variantID uuid.UUID, newQuantity int, acting Actor, source, reason string) (*dto.VariantResponse, error) {
	return s.mutate(ctx, variantID, acting, source, reason, func(current int) int {
		return newQuantity
	})
}

func (s *stockService) AdjustBy(ctx context.Context, variantID uuid.UUID, delta int, acting Actor, source, reason string) (*dto.VariantResponse, error) {
	return s.mutate(ctx, variantID, acting, source, reason, func(current int) int {
		return current + delta
	})
}

// mutate runs one locked read-modify-write cycle. The target quantity is
// computed from the locked row, so absolute sets and signed deltas share the
// same validation and audit path.
func (s *stockService) mutate(ctx context.Context, variantID uuid.UUID, acting Actor, source, reason string, target func(current int) int) (*dto.VariantResponse, error) {
	// Ownership check happens outside the tx; the locked re-read inside is
	// what the mutation actually trusts.
	if _, err := s.variants.FindByID(ctx, variantID, acting.Scope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("variant")
		}
		return nil, err
	}

	var variant *model.Variant
	txErr := runTx(ctx, s.variants.DB(), func(tx *gorm.DB) error {
		v, err := s.variants.FindByIDForUpdateTx(tx, variantID)
		if err != nil {
			return err
		}
		if _, err := s.SetQuantityTx(tx, v, target(v.StockQuantity), acting, source, reason, nil); err != nil {
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
	return variantToResponse(variant), nil
}

func (s *stockService) SetQuantityTx(tx *gorm.DB, variant *model.Variant, newQuantity int, acting Actor, source, reason string, saleID *uuid.UUID) (*model.InventoryAudit, error) {
	if newQuantity < 0 {
		return nil, apierror.Invalid("stock_quantity", "stock quantity must not be negative")
	}
	if newQuantity == variant.StockQuantity {
		// Idempotent no-op: no write, no audit row.
		return nil, nil
	}
	if source == "" {
		source = model.AuditSourceManual
	}
	if reason == "" {
		reason = model.DefaultReason(source)
	}

	oldQuantity := variant.StockQuantity
	if err := s.variants.UpdateStockTx(tx, variant.ID, newQuantity, acting.ID); err != nil {
		return nil, err
	}
	variant.StockQuantity = newQuantity
	actingID := acting.ID
	variant.LastUpdatedByID = &actingID

	audit := &model.InventoryAudit{
		VariantID:    variant.ID,
		ActingUserID: &actingID,
		OldQuantity:  oldQuantity,
		NewQuantity:  newQuantity,
		Source:       source,
		Reason:       reason,
		SaleID:       saleID,
	}
	if err := s.audits.CreateTx(tx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

func (s *stockService) ListAudits(ctx context.Context, acting Actor, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	audits, total, err := s.audits.List(ctx, acting.Scope(), filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditResponse, 0, len(audits))
	for _, a := range audits {
		items = append(items, auditToResponse(&a))
	}
	return &dto.AuditListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *stockService) ListLowStock(ctx context.Context, acting Actor) ([]dto.VariantResponse, error) {
	variants, err := s.variants.ListLowStock(ctx, acting.Scope())
	if err != nil {
		return nil, err
	}
	result := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		result = append(result, *variantToResponse(&v))
	}
	return result, nil
}

func auditToResponse(a *model.InventoryAudit) dto.AuditResponse {
	resp := dto.AuditResponse{
		ID:          a.ID.String(),
		VariantID:   a.VariantID.String(),
		OldQuantity: a.OldQuantity,
		NewQuantity: a.NewQuantity,
		Source:      a.Source,
		Reason:      a.Reason,
		Timestamp:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.Variant != nil {
		resp.VariantSKU = a.Variant.SKU
	}
	if a.ActingUserID != nil {
		id := a.ActingUserID.String()
		resp.ActingUserID = &id
	}
	if a.SaleID != nil {
		id := a.SaleID.String()
		resp.SaleID = &id
	}
	return resp
}
