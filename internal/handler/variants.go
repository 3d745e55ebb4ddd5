package handler

import (
	"net/http"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type VariantsHandler struct {
	svc   service.VariantService
	stock service.StockService
}

func NewVariantsHandler(svc service.VariantService, stock service.StockService) *VariantsHandler {
	return &VariantsHandler{svc: svc, stock: stock}
}

// Create POST /v1/products/:id/variants
// The SKU is generated here, exactly once, from the parent product and the
// variant attributes.
func (h *VariantsHandler) Create(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateVariantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actor(c), productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByProduct GET /v1/products/:id/variants
func (h *VariantsHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListByProduct(c.Request.Context(), actor(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get GET /v1/variants/:id
func (h *VariantsHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PUT /v1/variants/:id
// Never touches SKU or stock; those have their own rules.
func (h *VariantsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateVariantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/variants/:id
func (h *VariantsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// AdjustStock PATCH /v1/variants/:id/stock
// The only write path to stock outside of sales. Accepts either an absolute
// quantity or a signed delta, and records an audit row either way.
func (h *VariantsHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if (req.Quantity == nil) == (req.Delta == nil) {
		c.JSON(http.StatusUnprocessableEntity, apierror.Invalid("quantity", "exactly one of quantity or delta must be set"))
		return
	}

	var (
		resp *dto.VariantResponse
		err  error
	)
	if req.Quantity != nil {
		resp, err = h.stock.SetQuantity(c.Request.Context(), id, *req.Quantity, actor(c), req.Source, req.Reason)
	} else {
		resp, err = h.stock.AdjustBy(c.Request.Context(), id, *req.Delta, actor(c), req.Source, req.Reason)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListLowStock GET /v1/variants/low-stock
func (h *VariantsHandler) ListLowStock(c *gin.Context) {
	resp, err := h.stock.ListLowStock(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAudits GET /v1/audits
func (h *VariantsHandler) ListAudits(c *gin.Context) {
	var filter dto.AuditFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.stock.ListAudits(c.Request.Context(), actor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
