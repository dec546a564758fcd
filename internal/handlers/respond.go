package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/models"
)

// errorJSON writes the uniform error envelope every endpoint shares.
func errorJSON(c *gin.Context, status int, label string, message string) {
	c.JSON(status, gin.H{
		"error":   label,
		"message": message,
	})
}

// serverError hides internals behind a generic message.
func serverError(c *gin.Context, label string) {
	errorJSON(c, http.StatusInternalServerError, label, "An unexpected error occurred")
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type sweetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSweetResponse(sweet models.Sweet) sweetResponse {
	return sweetResponse{
		ID:          sweet.ID,
		Name:        sweet.Name,
		Description: sweet.Description,
		Category:    sweet.Category,
		Price:       sweet.Price,
		Quantity:    sweet.Quantity,
		ImageURL:    sweet.ImageURL,
		CreatedAt:   sweet.CreatedAt,
		UpdatedAt:   sweet.UpdatedAt,
	}
}

func toSweetResponses(sweets []models.Sweet) []sweetResponse {
	out := make([]sweetResponse, 0, len(sweets))
	for _, sweet := range sweets {
		out = append(out, toSweetResponse(sweet))
	}
	return out
}

type purchaseResponse struct {
	ID              string    `json:"id"`
	SweetID         *string   `json:"sweet_id"`
	SweetName       string    `json:"sweet_name"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase float64   `json:"price_at_purchase"`
	TotalAmount     float64   `json:"total_amount"`
	PurchasedAt     time.Time `json:"purchased_at"`
}

func toPurchaseResponse(p models.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:              p.ID,
		SweetID:         p.SweetID,
		SweetName:       p.SweetName,
		Quantity:        p.Quantity,
		PriceAtPurchase: p.PriceAtPurchase,
		TotalAmount:     p.TotalAmount,
		PurchasedAt:     p.PurchasedAt,
	}
}
