package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/analytics"
	"github.com/sweetdreamlabs/sweetdream/internal/cache"
	"github.com/sweetdreamlabs/sweetdream/internal/config"
	"github.com/sweetdreamlabs/sweetdream/internal/handlers"
	"github.com/sweetdreamlabs/sweetdream/internal/middleware"
)

// RegisterCatalogRoutes wires the catalog service: categories, products and
// carts. Product/category reads go through the redis cache when configured.
func RegisterCatalogRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	store := cache.NewStore(rdb, "catalog", time.Minute)

	dispatcher := analytics.NewDispatcher(logger)

	categoryHandler := handlers.NewCategoryHandler(db, store)
	productHandler := handlers.NewProductHandler(db, store)
	cartHandler := handlers.NewCartHandler(db, dispatcher)

	api := r.Group("/api")
	{
		categories := api.Group("/categories", cache.Middleware(store))
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		products := api.Group("/products", cache.Middleware(store))
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.GET("/category/:categoryId", productHandler.ListByCategory)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		cart := api.Group("/cart", middleware.AuthMiddleware(cfg))
		{
			cart.GET("", cartHandler.Get)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.Clear)
		}
	}
}
