package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sweetdreamlabs/sweetdream/internal/config"
	"github.com/sweetdreamlabs/sweetdream/internal/handlers"
	infraRepo "github.com/sweetdreamlabs/sweetdream/internal/infra/repository"
	ucOrder "github.com/sweetdreamlabs/sweetdream/internal/usecase/order"
	"github.com/sweetdreamlabs/sweetdream/internal/userclient"
)

// RegisterOrderRoutes wires the order service: the lifecycle use cases on
// top of the GORM repository and the user-service client.
func RegisterOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	orderRepo := infraRepo.NewOrderGormRepository(db)
	directory := userclient.New(cfg.UserServiceURL)

	createOrderUC := ucOrder.NewCreateOrder(orderRepo, directory)
	updateStatusUC := ucOrder.NewUpdateStatus(orderRepo)
	cancelOrderUC := ucOrder.NewCancelOrder(updateStatusUC)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		updateStatusUC,
		cancelOrderUC,
		orderRepo,
	)

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("", orderHandler.Create)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.POST("/:id/cancel", orderHandler.Cancel)
			orders.DELETE("/:id", orderHandler.Delete)
		}
	}
}
