package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AlertWorker processes low-stock jobs from QueueAlerts. It re-reads the
// variant before acting: stock may have been replenished between the enqueue
// and the dequeue, in which case the job is a no-op. At most one unresolved
// alert exists per variant.
type AlertWorker struct {
	variants   repository.VariantRepository
	alerts     repository.AlertRepository
	users      repository.UserRepository
	dispatcher *Dispatcher
}

func NewAlertWorker(variants repository.VariantRepository, alerts repository.AlertRepository, users repository.UserRepository, dispatcher *Dispatcher) *AlertWorker {
	return &AlertWorker{variants: variants, alerts: alerts, users: users, dispatcher: dispatcher}
}

func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	variantID, err := uuid.Parse(payload.VariantID)
	if err != nil {
		log.Error().Err(err).Str("variant_id", payload.VariantID).Msg("alert_worker: invalid variant id")
		return
	}

	variant, err := w.variants.FindByID(ctx, variantID, uuid.Nil)
	if err != nil {
		log.Warn().Err(err).Str("variant_id", payload.VariantID).Msg("alert_worker: variant not found")
		return
	}
	if !variant.IsLowStock() {
		return // replenished since the job was enqueued
	}

	exists, err := w.alerts.HasUnresolved(ctx, variantID)
	if err != nil {
		log.Error().Err(err).Str("variant_id", payload.VariantID).Msg("alert_worker: duplicate check failed")
		return
	}
	if exists {
		return
	}

	msg := fmt.Sprintf("Stock for %s is low: %d remaining (threshold %d)",
		variant.SKU, variant.StockQuantity, variant.ReorderThreshold)
	alert := &model.StockAlert{VariantID: variantID, Message: msg}
	if err := w.alerts.Create(ctx, alert); err != nil {
		log.Error().Err(err).Str("variant_id", payload.VariantID).Msg("alert_worker: failed to persist alert")
		return
	}
	log.Info().Str("sku", variant.SKU).Int("stock", variant.StockQuantity).Msg("alert_worker: low stock alert created")

	w.emailOwner(ctx, variant, msg)
}

// emailOwner enqueues a notification email to the product owner, when the
// owner has an email on file.
func (w *AlertWorker) emailOwner(ctx context.Context, variant *model.Variant, msg string) {
	if variant.Product == nil || w.dispatcher == nil {
		return
	}
	owner, err := w.users.FindByID(ctx, variant.Product.OwnerID)
	if err != nil || owner.Email == nil {
		return
	}
	payload := EmailJobPayload{
		ToEmail: *owner.Email,
		Subject: "Low stock: " + variant.SKU,
		Body:    msg,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("sku", variant.SKU).Msg("alert_worker: failed to enqueue email")
	}
}
