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
	cfg := config.Load("3001")
	logger := logging.New("catalog-service", cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.NewDB(cfg)
	defer db.Close(database)

	rdb := db.NewRedis(cfg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	r.GET("/health", server.Health("catalog-service"))
	routes.RegisterCatalogRoutes(r, database, rdb, cfg, logger)

	server.Run(r, cfg.Addr(), logger)
}
