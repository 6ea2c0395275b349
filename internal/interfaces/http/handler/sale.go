package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apptrade "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/interfaces/http/dto"
)

// SaleHandler handles checkout and sale history endpoints
type SaleHandler struct {
	BaseHandler
	saleService *apptrade.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *apptrade.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// PlaceOrder godoc
// @Summary      Place an order
// @Description  Records a sale and takes every line out of stock in one transaction.
// @Description  If any line fails nothing is written.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body apptrade.PlaceOrderRequest true "Order"
// @Success      201 {object} APIResponse[apptrade.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Insufficient stock or no branch assigned"
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) PlaceOrder(c *gin.Context) {
	var req apptrade.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.PlaceOrder(c.Request.Context(), h.actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID godoc
// @Summary      Get a sale with its items
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID"
// @Success      200 {object} APIResponse[apptrade.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	sale, err := h.saleService.GetByID(c.Request.Context(), h.actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List godoc
// @Summary      List sales
// @Description  Sales of the caller's branch, newest first. Admins may pass branch_id.
// @Tags         sales
// @Produce      json
// @Param        branch_id query string false "Branch ID"
// @Param        user_id   query string false "Seller ID"
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]apptrade.SaleResponse]
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter apptrade.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.saleService.List(c.Request.Context(), h.actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}
