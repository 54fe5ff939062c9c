package handler

import (
	"net/http"

	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type PriceCheckHandler struct {
	prices *service.PriceCheckService
}

func NewPriceCheckHandler(prices *service.PriceCheckService) *PriceCheckHandler {
	return &PriceCheckHandler{prices: prices}
}

// Lookup godoc
// @Summary Price check by barcode
// @Description Customer-facing price lookup. Cached in Redis for five
// @Description minutes per barcode.
// @Tags price
// @Produce json
// @Param barcode path string true "barcode"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{barcode} [get]
func (h *PriceCheckHandler) Lookup(c *gin.Context) {
	resp, err := h.prices.Lookup(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
