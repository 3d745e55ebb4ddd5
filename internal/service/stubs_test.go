package service_test

// In-memory repository stubs shared by the service tests. They mirror the
// filtering the real GORM repositories do, including owner scoping
// (uuid.Nil means unscoped).

import (
	"context"
	"sort"
	"strings"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── CategoryRepository stub ──────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
	products   *stubProductRepo
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	result := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	if r.products == nil {
		return 0, nil
	}
	var n int64
	for _, p := range r.products.products {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	variants *stubVariantRepo
	nextCode int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.nextCode++
	p.Code = r.nextCode
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if ownerID != uuid.Nil && p.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if ownerID != uuid.Nil && p.OwnerID != ownerID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID.String() != filter.CategoryID {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CountSales(_ context.Context, id uuid.UUID) (int64, error) {
	if r.variants == nil {
		return 0, nil
	}
	var n int64
	for _, v := range r.variants.variants {
		if v.ProductID == id {
			n += int64(len(r.variants.salesByVariant[v.ID]))
		}
	}
	return n, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── VariantRepository stub ───────────────────────────────────────────────────

type stubVariantRepo struct {
	variants       map[uuid.UUID]*model.Variant
	products       *stubProductRepo
	salesByVariant map[uuid.UUID][]uuid.UUID
}

func newStubVariantRepo(products *stubProductRepo) *stubVariantRepo {
	r := &stubVariantRepo{
		variants:       make(map[uuid.UUID]*model.Variant),
		products:       products,
		salesByVariant: make(map[uuid.UUID][]uuid.UUID),
	}
	if products != nil {
		products.variants = r
	}
	return r
}

func (r *stubVariantRepo) owned(v *model.Variant, ownerID uuid.UUID) bool {
	if ownerID == uuid.Nil {
		return true
	}
	if r.products == nil {
		return true
	}
	p, ok := r.products.products[v.ProductID]
	return ok && p.OwnerID == ownerID
}

func (r *stubVariantRepo) attachProduct(v *model.Variant) {
	if v.Product == nil && r.products != nil {
		if p, ok := r.products.products[v.ProductID]; ok {
			v.Product = p
		}
	}
}

func (r *stubVariantRepo) Create(_ context.Context, v *model.Variant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variants[v.ID] = v
	return nil
}

func (r *stubVariantRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*model.Variant, error) {
	v, ok := r.variants[id]
	if !ok || !r.owned(v, ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	r.attachProduct(v)
	return v, nil
}

func (r *stubVariantRepo) FindBySKU(_ context.Context, sku string) (*model.Variant, error) {
	for _, v := range r.variants {
		if v.SKU == sku {
			r.attachProduct(v)
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVariantRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.Variant, error) {
	var result []model.Variant
	for _, v := range r.variants {
		if v.ProductID == productID {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVariantRepo) ListLowStock(_ context.Context, ownerID uuid.UUID) ([]model.Variant, error) {
	var result []model.Variant
	for _, v := range r.variants {
		if v.IsLowStock() && r.owned(v, ownerID) {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVariantRepo) Update(_ context.Context, v *model.Variant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *stubVariantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.variants, id)
	return nil
}

func (r *stubVariantRepo) CountSales(_ context.Context, id uuid.UUID) (int64, error) {
	return int64(len(r.salesByVariant[id])), nil
}

func (r *stubVariantRepo) CountByProductAndName(_ context.Context, productID uuid.UUID, name string) (int64, error) {
	var n int64
	for _, v := range r.variants {
		if v.ProductID == productID && v.VariantName == name {
			n++
		}
	}
	return n, nil
}

func (r *stubVariantRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVariantRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, quantity int, updatedBy uuid.UUID) error {
	v, ok := r.variants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.StockQuantity = quantity
	by := updatedBy
	v.LastUpdatedByID = &by
	return nil
}

func (r *stubVariantRepo) DB() *gorm.DB { return nil }

var _ repository.VariantRepository = (*stubVariantRepo)(nil)

// ── AuditRepository stub ─────────────────────────────────────────────────────

type stubAuditRepo struct {
	audits []*model.InventoryAudit
}

func newStubAuditRepo() *stubAuditRepo { return &stubAuditRepo{} }

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, a *model.InventoryAudit) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.audits = append(r.audits, a)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, _ uuid.UUID, filter dto.AuditFilter) ([]model.InventoryAudit, int64, error) {
	var result []model.InventoryAudit
	for _, a := range r.audits {
		if filter.VariantID != "" && a.VariantID.String() != filter.VariantID {
			continue
		}
		if filter.Source != "" && a.Source != filter.Source {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (r *stubAuditRepo) CountByVariant(_ context.Context, variantID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range r.audits {
		if a.VariantID == variantID {
			n++
		}
	}
	return n, nil
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales    map[uuid.UUID]*model.Sale
	variants *stubVariantRepo
}

func newStubSaleRepo(variants *stubVariantRepo) *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale), variants: variants}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	if r.variants != nil {
		r.variants.salesByVariant[s.VariantID] = append(r.variants.salesByVariant[s.VariantID], s.ID)
	}
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.variants != nil {
		if v, ok := r.variants.variants[s.VariantID]; ok {
			if !r.variants.owned(v, ownerID) {
				return nil, gorm.ErrRecordNotFound
			}
			r.variants.attachProduct(v)
			s.Variant = v
		}
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if filter.VariantID != "" && s.VariantID.String() != filter.VariantID {
			continue
		}
		if r.variants != nil {
			if v, ok := r.variants.variants[s.VariantID]; ok {
				if !r.variants.owned(v, ownerID) {
					continue
				}
				r.variants.attachProduct(v)
				s.Variant = v
			}
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── OrderRepository stub ─────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	products *stubProductRepo
}

func newStubOrderRepo(products *stubProductRepo) *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order), products: products}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if ownerID != uuid.Nil && r.products != nil {
		p, ok := r.products.products[o.ProductID]
		if !ok || p.OwnerID != ownerID {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var result []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if ownerID != uuid.Nil && r.products != nil {
			p, ok := r.products.products[o.ProductID]
			if !ok || p.OwnerID != ownerID {
				continue
			}
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── AlertRepository stub ─────────────────────────────────────────────────────

type stubAlertRepo struct {
	alerts   map[uuid.UUID]*model.StockAlert
	variants *stubVariantRepo
}

func newStubAlertRepo(variants *stubVariantRepo) *stubAlertRepo {
	return &stubAlertRepo{alerts: make(map[uuid.UUID]*model.StockAlert), variants: variants}
}

func (r *stubAlertRepo) owned(a *model.StockAlert, ownerID uuid.UUID) bool {
	if ownerID == uuid.Nil || r.variants == nil {
		return true
	}
	v, ok := r.variants.variants[a.VariantID]
	return ok && r.variants.owned(v, ownerID)
}

func (r *stubAlertRepo) Create(_ context.Context, a *model.StockAlert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.alerts[a.ID] = a
	return nil
}

func (r *stubAlertRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*model.StockAlert, error) {
	a, ok := r.alerts[id]
	if !ok || !r.owned(a, ownerID) {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAlertRepo) List(_ context.Context, ownerID uuid.UUID, filter dto.AlertFilter) ([]model.StockAlert, int64, error) {
	var result []model.StockAlert
	for _, a := range r.alerts {
		if !r.owned(a, ownerID) {
			continue
		}
		if filter.Resolved == "true" && !a.IsResolved {
			continue
		}
		if filter.Resolved == "false" && a.IsResolved {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (r *stubAlertRepo) HasUnresolved(_ context.Context, variantID uuid.UUID) (bool, error) {
	for _, a := range r.alerts {
		if a.VariantID == variantID && !a.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAlertRepo) Resolve(_ context.Context, id uuid.UUID) error {
	a, ok := r.alerts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.IsResolved = true
	return nil
}

var _ repository.AlertRepository = (*stubAlertRepo)(nil)

// ── Notifier stub ────────────────────────────────────────────────────────────

type stubNotifier struct {
	notified []uuid.UUID
}

func (n *stubNotifier) NotifyLowStock(_ context.Context, variantID uuid.UUID) {
	n.notified = append(n.notified, variantID)
}
