package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"sweetshop/api/internal/config"
	"sweetshop/api/internal/middleware"
	"sweetshop/api/internal/models"
	"sweetshop/api/internal/repository"
	"sweetshop/api/internal/service"
	"sweetshop/api/internal/storage"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	auth      *service.AuthService
	catalog   *service.CatalogService
	inventory *service.InventoryService
	images    *service.ImageService
	db        *pgxpool.Pool
	cache     *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sweetRepo := repository.NewSweetRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	auth := service.NewAuthService(userRepo, cfg, log)
	catalog := service.NewCatalogService(sweetRepo, log)
	inventory := service.NewInventoryService(sweetRepo, purchaseRepo, cache, log)

	var images *service.ImageService
	if store != nil {
		images = service.NewImageService(sweetRepo, store, log)
	}

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		auth:      auth,
		catalog:   catalog,
		inventory: inventory,
		images:    images,
		db:        db,
		cache:     cache,
	}
}

func (h HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", middleware.Auth(h.cfg), h.Me)

	admin := middleware.RequireRole(models.RoleAdmin)

	sweets := router.Group("/sweets")
	sweets.Use(middleware.Auth(h.cfg))
	{
		sweets.GET("", h.ListSweets)
		sweets.GET("/search", h.SearchSweets)
		sweets.GET("/:id", h.GetSweet)
		sweets.POST("/:id/purchase", h.PurchaseSweet)

		sweets.POST("", admin, h.CreateSweet)
		sweets.PUT("/:id", admin, h.UpdateSweet)
		sweets.DELETE("/:id", admin, h.DeleteSweet)
		sweets.POST("/:id/restock", admin, h.RestockSweet)
		sweets.POST("/:id/image", admin, h.UploadSweetImage)
	}

	router.GET("/purchases", middleware.Auth(h.cfg), h.ListPurchases)
}
