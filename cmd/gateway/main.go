package main

import (
	"github.com/gin-gonic/gin"

	"github.com/sweetdreamlabs/sweetdream/internal/config"
	"github.com/sweetdreamlabs/sweetdream/internal/gateway"
	"github.com/sweetdreamlabs/sweetdream/internal/logging"
	"github.com/sweetdreamlabs/sweetdream/internal/middleware"
	"github.com/sweetdreamlabs/sweetdream/internal/server"
)

func main() {
	cfg := config.Load("3000")
	logger := logging.New("api-gateway", cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	r.GET("/health", server.Health("api-gateway"))
	gateway.New(cfg, logger).Register(r)

	server.Run(r, cfg.Addr(), logger)
}
