package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/eatsprint/internal/config"
	"github.com/polkiloo/eatsprint/internal/domain/repository"
	"github.com/polkiloo/eatsprint/internal/metrics"
	"github.com/polkiloo/eatsprint/internal/server/http/handlers"
	"github.com/polkiloo/eatsprint/internal/server/http/middleware"
	"github.com/polkiloo/eatsprint/internal/server/ws"
)

const liveOrdersPath = "/api/order/ws"

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade   handlers.StoreFacade
	Logger   *slog.Logger
	Config   *config.Config
	Metrics  *metrics.Metrics
	Live     *ws.Hub
	Checkers []repository.HealthChecker `group:"health_checkers"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Instrument(p.Metrics))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{liveOrdersPath})))

	engine.GET("/healthz", handlers.Health(p.Checkers...))
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	authHandler := handlers.NewAuthHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	cartHandler := handlers.NewCartHandler(p.Facade)
	foodHandler := handlers.NewFoodHandler(p.Facade)

	authRequired := middleware.AuthRequired(p.Facade)
	adminRequired := middleware.AdminRequired(p.Config.AdminToken, p.Logger)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/food/list", foodHandler.List)

	order := api.Group("/order")
	order.POST("/verify", orderHandler.Verify)

	orderAuth := order.Group("", authRequired)
	orderAuth.POST("/place", orderHandler.Place)
	orderAuth.POST("/user-orders", orderHandler.UserOrders)
	orderAuth.GET("/user-orders", orderHandler.UserOrders)
	orderAuth.POST("/cancel", orderHandler.Cancel)
	orderAuth.GET("/ws/:orderId", p.Live.Serve)

	orderAdmin := order.Group("", adminRequired)
	orderAdmin.GET("/list", orderHandler.List)
	orderAdmin.POST("/status", orderHandler.UpdateStatus)

	cart := api.Group("/cart", authRequired)
	cart.POST("/add", cartHandler.Add)
	cart.POST("/remove", cartHandler.Remove)
	cart.POST("/get", cartHandler.Get)
	cart.GET("/get", cartHandler.Get)
	cart.POST("/clear", cartHandler.Clear)
	cart.POST("/merge", cartHandler.Merge)
	cart.POST("/quote", cartHandler.Quote)

	return engine
}
