package service_test

import (
	"testing"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// world wires the in-memory stubs together the way the real repositories are
// joined in Postgres, so owner scoping and restrict-delete counts behave the
// same in tests.
type world struct {
	categories *stubCategoryRepo
	products   *stubProductRepo
	variants   *stubVariantRepo
	audits     *stubAuditRepo
	sales      *stubSaleRepo
	orders     *stubOrderRepo
	alerts     *stubAlertRepo
	notifier   *stubNotifier

	owner service.Actor
	other service.Actor
	admin service.Actor
}

func newWorld() *world {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	categories.products = products
	variants := newStubVariantRepo(products)
	return &world{
		categories: categories,
		products:   products,
		variants:   variants,
		audits:     newStubAuditRepo(),
		sales:      newStubSaleRepo(variants),
		orders:     newStubOrderRepo(products),
		alerts:     newStubAlertRepo(variants),
		notifier:   &stubNotifier{},

		owner: service.Actor{ID: uuid.New(), Role: model.RoleStaff},
		other: service.Actor{ID: uuid.New(), Role: model.RoleStaff},
		admin: service.Actor{ID: uuid.New(), Role: model.RoleAdmin},
	}
}

func (w *world) seedCategory(name string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name}
	w.categories.categories[c.ID] = c
	return c
}

func (w *world) seedProduct(owner uuid.UUID, category *model.Category, name, price string) *model.Product {
	w.products.nextCode++
	p := &model.Product{
		ID:         uuid.New(),
		Code:       w.products.nextCode,
		Name:       name,
		CategoryID: category.ID,
		Category:   category,
		Price:      decimal.RequireFromString(price),
		OwnerID:    owner,
	}
	w.products.products[p.ID] = p
	return p
}

func (w *world) seedVariant(p *model.Product, name string, stock, threshold int, color string, size *string) *model.Variant {
	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}
	v := &model.Variant{
		ID:               uuid.New(),
		ProductID:        p.ID,
		VariantName:      name,
		Size:             size,
		Color:            color,
		StockQuantity:    stock,
		ReorderThreshold: threshold,
		SKU:              service.BuildSKU(categoryName, p.Code, size, color),
	}
	w.variants.variants[v.ID] = v
	return v
}

func (w *world) seedOrder(p *model.Product, createdBy uuid.UUID, status string) *model.Order {
	o := &model.Order{
		ID:           uuid.New(),
		ProductID:    p.ID,
		CustomerName: "Ada Lovelace",
		Status:       status,
		CreatedByID:  createdBy,
	}
	w.orders.orders[o.ID] = o
	return o
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
