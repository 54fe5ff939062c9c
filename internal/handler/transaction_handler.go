package handler

import (
	"net/http"

	"warungpos/internal/dto"
	"warungpos/internal/middleware"
	"warungpos/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Checkout godoc
// @Summary Finalize a sale cart
// @Description Validates the payment covers the amount due, persists the
// @Description sale, decrements stock in base units and updates customer
// @Description loyalty counters in one transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "cart id"
// @Param request body dto.CheckoutRequest true "payment"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /v1/carts/{id}/checkout [post]
func (h *TransactionHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.transactions.Checkout(c.Request.Context(), c.Param("id"), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Suspend parks a cart as a pending transaction.
func (h *TransactionHandler) Suspend(c *gin.Context) {
	var req dto.SuspendRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.transactions.Suspend(c.Request.Context(), c.Param("id"), req, middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Resume loads a pending transaction into a fresh cart.
func (h *TransactionHandler) Resume(c *gin.Context) {
	resp, err := h.transactions.Resume(c.Request.Context(), c.Param("id"), middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransactionHandler) ListPending(c *gin.Context) {
	resp, err := h.transactions.ListPending(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionHandler) List(c *gin.Context) {
	start, end, search, ok := dateRange(c)
	if !ok {
		return
	}
	resp, err := h.transactions.List(c.Request.Context(), start, end, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	resp, err := h.transactions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
