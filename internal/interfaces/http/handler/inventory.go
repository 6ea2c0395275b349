package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles stock adjustment and stock read endpoints
type InventoryHandler struct {
	BaseHandler
	stockService *appinv.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *appinv.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// ApplyMovement godoc
// @Summary      Adjust stock
// @Description  Applies an IN, OUT or SET movement to one counter and records it in the movement log.
// @Description  Without branch_id the caller's branch is used.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body appinv.ApplyMovementRequest true "Movement"
// @Success      201 {object} APIResponse[appinv.ApplyMovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Insufficient stock or no branch assigned"
// @Security     BearerAuth
// @Router       /inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *gin.Context) {
	var req appinv.ApplyMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.stockService.ApplyMovement(c.Request.Context(), h.actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListMovements godoc
// @Summary      Movement history
// @Tags         inventory
// @Produce      json
// @Param        product_id query string false "Product ID"
// @Param        variant_id query string false "Variant ID"
// @Param        branch_id  query string false "Branch ID"
// @Param        kind       query string false "IN, OUT or SET"
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} APIResponse[[]appinv.MovementResponse]
// @Security     BearerAuth
// @Router       /inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter appinv.MovementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.stockService.ListMovements(c.Request.Context(), h.actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// ListStock godoc
// @Summary      Stock of a branch
// @Tags         inventory
// @Produce      json
// @Param        branch_id  query string false "Branch ID"
// @Param        product_id query []string false "Product IDs" collectionFormat(multi)
// @Success      200 {object} APIResponse[[]appinv.StockCounterResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	var filter appinv.StockListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	counters, err := h.stockService.ListStock(c.Request.Context(), h.actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counters)
}
