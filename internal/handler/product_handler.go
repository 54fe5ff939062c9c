package handler

import (
	"net/http"

	"warungpos/internal/dto"
	"warungpos/internal/middleware"
	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "match sku, name, unit or remarks"
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	resp, err := h.products.Get(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), c.Param("sku"), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("sku"), middleware.UserIDFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Units

func (h *ProductHandler) ListUnits(c *gin.Context) {
	units, err := h.products.ListUnits(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *ProductHandler) AddUnit(c *gin.Context) {
	var req dto.UnitRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.products.AddUnit(c.Request.Context(), c.Param("sku"), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) UpdateUnit(c *gin.Context) {
	var req dto.UnitRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.products.UpdateUnit(c.Request.Context(), c.Param("sku"), c.Param("unit"), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) DeleteUnit(c *gin.Context) {
	if err := h.products.DeleteUnit(c.Request.Context(), c.Param("sku"), c.Param("unit"), middleware.UserIDFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
