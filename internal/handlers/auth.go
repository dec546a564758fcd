package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/api/internal/middleware"
	"sweetshop/api/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h HandlerSet) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		errorJSON(c, http.StatusBadRequest, "Missing required fields", "Email, password, and name are required")
		return
	}
	if len(req.Password) < 6 {
		errorJSON(c, http.StatusBadRequest, "Invalid password", "Password must be at least 6 characters")
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			errorJSON(c, http.StatusConflict, "User exists", "A user with this email already exists")
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		serverError(c, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		errorJSON(c, http.StatusBadRequest, "Missing credentials", "Email and password are required")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorJSON(c, http.StatusUnauthorized, "Invalid credentials", "Invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		serverError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
