package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/middleware"
	"sweetshop/api/internal/repository"
	"sweetshop/api/internal/service"
)

type purchaseRequest struct {
	Quantity *int `json:"quantity"`
}

func (h HandlerSet) PurchaseSweet(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	// An empty body means "buy one".
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.inventory.Purchase(c.Request.Context(), claims.UserID, c.Param("id"), quantity)
	if err != nil {
		var (
			vErr     *service.ValidationError
			stockErr *repository.InsufficientStockError
		)
		switch {
		case errors.As(err, &vErr):
			errorJSON(c, http.StatusBadRequest, "Invalid quantity", vErr.Message)
		case errors.As(err, &stockErr):
			errorJSON(c, http.StatusBadRequest, "Insufficient stock",
				fmt.Sprintf("Only %d items available", stockErr.Available))
		case errors.Is(err, repository.ErrSweetNotFound):
			errorJSON(c, http.StatusNotFound, "Not found", "Sweet not found")
		default:
			h.log.Error().Err(err).Str("sweet_id", c.Param("id")).Msg("purchase failed")
			serverError(c, "Purchase failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase successful",
		"purchase": gin.H{
			"sweet_name":     result.Purchase.SweetName,
			"quantity":       result.Purchase.Quantity,
			"price_per_item": result.Purchase.PriceAtPurchase,
			"total_amount":   result.Purchase.TotalAmount,
		},
		"remaining_stock": result.Remaining,
	})
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (h HandlerSet) RestockSweet(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	sweet, err := h.inventory.Restock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			errorJSON(c, http.StatusBadRequest, "Invalid quantity", vErr.Message)
		case errors.Is(err, repository.ErrSweetNotFound):
			errorJSON(c, http.StatusNotFound, "Not found", "Sweet not found")
		default:
			h.log.Error().Err(err).Str("sweet_id", c.Param("id")).Msg("restock failed")
			serverError(c, "Restock failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Restock successful",
		"sweet":          toSweetResponse(sweet),
		"added_quantity": req.Quantity,
		"new_total":      sweet.Quantity,
	})
}

func (h HandlerSet) ListPurchases(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	purchases, err := h.inventory.History(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list purchases failed")
		serverError(c, "Fetch failed")
		return
	}

	out := make([]purchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{"purchases": out})
}
