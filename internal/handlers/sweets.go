package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/models"
	"sweetshop/api/internal/repository"
	"sweetshop/api/internal/service"
)

func (h HandlerSet) ListSweets(c *gin.Context) {
	sweets, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list sweets failed")
		serverError(c, "Fetch failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweets": toSweetResponses(sweets)})
}

func (h HandlerSet) SearchSweets(c *gin.Context) {
	filter := models.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	sweets, err := h.catalog.Search(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("search sweets failed")
		serverError(c, "Search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweets": toSweetResponses(sweets)})
}

func (h HandlerSet) GetSweet(c *gin.Context) {
	sweet, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSweetNotFound) {
			errorJSON(c, http.StatusNotFound, "Not found", "Sweet not found")
			return
		}
		h.log.Error().Err(err).Msg("get sweet failed")
		serverError(c, "Fetch failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweet": toSweetResponse(sweet)})
}

type createSweetRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	ImageURL    *string  `json:"image_url"`
}

func (h HandlerSet) CreateSweet(c *gin.Context) {
	var req createSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	// Price zero is a valid price; only its absence is an error.
	if req.Name == "" || req.Category == "" || req.Price == nil {
		errorJSON(c, http.StatusBadRequest, "Missing fields", "Name, category, and price are required")
		return
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sweet, err := h.catalog.Create(c.Request.Context(), service.CreateSweetInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			errorJSON(c, http.StatusBadRequest, "Invalid fields", vErr.Message)
			return
		}
		h.log.Error().Err(err).Msg("create sweet failed")
		serverError(c, "Create failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sweet": toSweetResponse(sweet)})
}

type updateSweetRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	ImageURL    *string  `json:"image_url"`
}

func (h HandlerSet) UpdateSweet(c *gin.Context) {
	var req updateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	patch := models.SweetPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}

	sweet, err := h.catalog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			errorJSON(c, http.StatusBadRequest, "Invalid fields", vErr.Message)
		case errors.Is(err, repository.ErrSweetNotFound):
			errorJSON(c, http.StatusNotFound, "Not found", "Sweet not found")
		default:
			h.log.Error().Err(err).Msg("update sweet failed")
			serverError(c, "Update failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"sweet": toSweetResponse(sweet)})
}

func (h HandlerSet) DeleteSweet(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("delete sweet failed")
		serverError(c, "Delete failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"})
}
