package handler

import (
	"net/http"

	"warungpos/internal/dto"
	"warungpos/internal/middleware"
	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchasingHandler struct {
	purchasing *service.PurchasingService
}

func NewPurchasingHandler(purchasing *service.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{purchasing: purchasing}
}

// Submit godoc
// @Summary Book a goods receipt
// @Description Persists the receipt and updates stock, last price and the
// @Description weighted average cost of every line's product atomically.
// @Tags purchasing
// @Accept json
// @Produce json
// @Param request body dto.PurchasingSubmitRequest true "receipt"
// @Success 201 {object} dto.PurchasingResponse
// @Security BearerAuth
// @Router /v1/purchasing [post]
func (h *PurchasingHandler) Submit(c *gin.Context) {
	var req dto.PurchasingSubmitRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.purchasing.Submit(c.Request.Context(), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchasingHandler) List(c *gin.Context) {
	start, end, search, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.purchasing.List(c.Request.Context(), start, end, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchasingHandler) Get(c *gin.Context) {
	resp, err := h.purchasing.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistoryBySKU lists past receipt lines for one product, newest first.
func (h *PurchasingHandler) HistoryBySKU(c *gin.Context) {
	resp, err := h.purchasing.HistoryBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
