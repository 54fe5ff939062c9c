package handler

import (
	"net/http"

	"warungpos/internal/dto"
	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Create godoc
// @Summary Open a new cart
// @Tags carts
// @Produce json
// @Param kind query string false "sale (default) or purchase"
// @Success 201 {object} dto.CartResponse
// @Security BearerAuth
// @Router /v1/carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	kind := c.DefaultQuery("kind", service.CartKindSale)
	resp, err := h.carts.Create(kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.carts.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary Add an item to the cart
// @Description Merges with an existing line when the same sku and unit is
// @Description already present: quantities are summed, the subtotal recomputed.
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "cart id"
// @Param request body dto.AddItemRequest true "item"
// @Success 200 {object} dto.CartResponse
// @Security BearerAuth
// @Router /v1/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.AddItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.UpdateItem(c.Param("id"), c.Param("sku"), c.Param("unit"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp, err := h.carts.RemoveItem(c.Param("id"), c.Param("sku"), c.Param("unit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.carts.Clear(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Close(c *gin.Context) {
	if err := h.carts.Close(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StockCheck godoc
// @Summary Preview stock-after for a typed quantity
// @Description Returns current stock minus queued cart quantity minus the
// @Description typed quantity in base units. Negative results are flagged
// @Description but never block the sale.
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "cart id"
// @Param request body dto.StockCheckRequest true "sku, unit, qty"
// @Success 200 {object} ledger.StockProjection
// @Security BearerAuth
// @Router /v1/carts/{id}/stock-check [post]
func (h *CartHandler) StockCheck(c *gin.Context) {
	var req dto.StockCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.carts.StockCheck(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
