package main

import (
	"github.com/gin-gonic/gin"

	"github.com/sweetdreamlabs/sweetdream/internal/config"
	"github.com/sweetdreamlabs/sweetdream/internal/db"
	"github.com/sweetdreamlabs/sweetdream/internal/logging"
	"github.com/sweetdreamlabs/sweetdream/internal/middleware"
	"github.com/sweetdreamlabs/sweetdream/internal/routes"
	"github.com/sweetdreamlabs/sweetdream/internal/server"
)

func main() {
	cfg := config.Load("3002")
	logger := logging.New("order-service", cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.NewDB(cfg)
	defer db.Close(database)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	r.GET("/health", server.Health("order-service"))
	routes.RegisterOrderRoutes(r, database, cfg)

	server.Run(r, cfg.Addr(), logger)
}
