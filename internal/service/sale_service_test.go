package service_test

import (
	"context"
	"testing"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleService(w *world) service.SaleService {
	stock := service.NewStockService(w.variants, w.audits, w.notifier)
	return service.NewSaleService(w.sales, w.variants, w.products, stock, w.notifier, "")
}

func TestRecordSale(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 10, 5, "Blue", strptr("M"))
	svc := newSaleService(w)

	resp, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "136.50", resp.TotalPrice.StringFixed(2))
	assert.Equal(t, 3, resp.QuantitySold)
	assert.Equal(t, v.SKU, resp.VariantSKU)
	assert.Equal(t, "Linen Shirt", resp.ProductName)
	assert.Equal(t, 7, resp.StockRemaining)
	assert.False(t, resp.LowStock)
	assert.Equal(t, 7, v.StockQuantity)

	// The decrement went through the ledger, tagged with the sale.
	require.Len(t, w.audits.audits, 1)
	audit := w.audits.audits[0]
	assert.Equal(t, model.AuditSourceSale, audit.Source)
	assert.Equal(t, 10, audit.OldQuantity)
	assert.Equal(t, 7, audit.NewQuantity)
	require.NotNil(t, audit.SaleID)
	assert.Equal(t, resp.ID, audit.SaleID.String())
	assert.Contains(t, audit.Reason, v.SKU)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 2, 5, "Blue", nil)
	svc := newSaleService(w)

	_, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 3,
	})
	var ins *apierror.InsufficientStock
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 3, ins.Requested)
	assert.Equal(t, 2, ins.Available)

	// Nothing committed: no sale, no audit, stock untouched.
	assert.Empty(t, w.sales.sales)
	assert.Empty(t, w.audits.audits)
	assert.Equal(t, 2, v.StockQuantity)
}

func TestRecordSaleExactStockAllowed(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 3, 5, "Blue", nil)
	svc := newSaleService(w)

	resp, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockRemaining)
	assert.True(t, resp.LowStock)
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	w := newWorld()
	svc := newSaleService(w)

	for _, qty := range []int{0, -1} {
		_, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
			VariantID:    "ignored",
			QuantitySold: qty,
		})
		var verr *apierror.ValidationError
		require.ErrorAs(t, err, &verr)
	}
}

func TestRecordSaleCrossingThresholdNotifies(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 6, 5, "Blue", nil)
	svc := newSaleService(w)

	_, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 2,
	})
	require.NoError(t, err)
	require.Len(t, w.notifier.notified, 1)
	assert.Equal(t, v.ID, w.notifier.notified[0])
}

func TestRecordSaleScopedToOwner(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 10, 5, "Blue", nil)
	svc := newSaleService(w)

	_, err := svc.RecordSale(context.Background(), w.other, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 1,
	})
	var nf *apierror.NotFound
	require.ErrorAs(t, err, &nf)
}

func TestGetSaleAndList(t *testing.T) {
	w := newWorld()
	cat := w.seedCategory("Shirts")
	p := w.seedProduct(w.owner.ID, cat, "Linen Shirt", "45.50")
	v := w.seedVariant(p, "Blue M", 10, 5, "Blue", nil)
	svc := newSaleService(w)

	created, err := svc.RecordSale(context.Background(), w.owner, dto.RecordSaleRequest{
		VariantID:    v.ID.String(),
		QuantitySold: 2,
	})
	require.NoError(t, err)

	got, err := svc.GetSale(context.Background(), w.owner, mustUUID(t, created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, v.SKU, got.VariantSKU)

	list, err := svc.ListSales(context.Background(), w.owner, dto.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, int64(1), list.Total)

	// Other staff see nothing; admins see everything.
	_, err = svc.GetSale(context.Background(), w.other, mustUUID(t, created.ID))
	var nf *apierror.NotFound
	require.ErrorAs(t, err, &nf)

	adminList, err := svc.ListSales(context.Background(), w.admin, dto.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, adminList.Data, 1)
}
