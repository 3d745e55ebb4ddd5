package handler

import (
	"net/http"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/dto"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct{ svc service.AlertService }

func NewAlertsHandler(svc service.AlertService) *AlertsHandler { return &AlertsHandler{svc: svc} }

// List GET /v1/alerts
func (h *AlertsHandler) List(c *gin.Context) {
	var filter dto.AlertFilter
	if !bindQuery(c, &filter) {
		return
	}
	data, total, err := h.svc.ListAlerts(c.Request.Context(), actor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Resolve PATCH /v1/alerts/:id/resolve
func (h *AlertsHandler) Resolve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ResolveAlert(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// LookupPrice GET /v1/price/:sku
// Public endpoint: no auth, Redis-cached.
func (h *AlertsHandler) LookupPrice(c *gin.Context) {
	sku := c.Param("sku")
	resp, err := h.svc.LookupPrice(c.Request.Context(), sku)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
