package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickit/print-system/internal/api/handler"
	"github.com/pickit/print-system/internal/api/middleware"
	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
	"github.com/pickit/print-system/internal/core/service"
	mongorepo "github.com/pickit/print-system/internal/infrastructure/db/mongo"
	redisstore "github.com/pickit/print-system/internal/infrastructure/db/redis"
)

// Dependencies carries the externally constructed collaborators the router
// wires into services: storage clients plus the pluggable gateway, effect
// dispatcher, and geocoder.
type Dependencies struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Payments  ports.PaymentGateway
	Effects   ports.EffectDispatcher
	Geocoder  ports.Geocoder
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pickit"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Repositories and services ---
	jobRepo := mongorepo.NewJobRepository(deps.Mongo)
	shopRepo := mongorepo.NewShopRepository(deps.Mongo)
	historyRepo := mongorepo.NewHistoryRepository(deps.Mongo)
	authRepo := mongorepo.NewAuthRepository(deps.Mongo)
	sessions := redisstore.NewSessionStore(deps.Redis)

	jobService := service.NewJobService(jobRepo, shopRepo, historyRepo, sessions, deps.Payments, deps.Effects, deps.Log)
	handshakeService := service.NewHandshakeService(shopRepo, sessions, jobService, deps.Log)
	shopService := service.NewShopService(shopRepo, deps.Geocoder, deps.Log)
	historyService := service.NewHistoryService(historyRepo, deps.Log)
	authService := service.NewAuthService(authRepo, shopRepo, sessions, deps.JWTSecret, deps.TokenTTL, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	operatorHandler := handler.NewOperatorHandler(jobService, shopService)
	handshakeHandler := handler.NewHandshakeHandler(handshakeService)
	sessionHandler := handler.NewSessionHandler(sessions)
	historyHandler := handler.NewHistoryHandler(historyService)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	v1.GET("/session", sessionHandler.State, middleware.RBAC(domain.RoleCustomer, domain.RoleOperator))

	customer := v1.Group("", middleware.RBAC(domain.RoleCustomer))
	customer.POST("/jobs", jobHandler.Submit)
	customer.GET("/jobs/active", jobHandler.Active)
	customer.POST("/jobs/active/payment", jobHandler.StartPayment)
	customer.DELETE("/jobs/active/payment", jobHandler.CancelPayment)
	customer.POST("/handshake/begin", handshakeHandler.Begin)
	customer.POST("/handshake/permission", handshakeHandler.Permission)
	customer.POST("/handshake/frames", handshakeHandler.Frame)
	customer.GET("/handshake", handshakeHandler.State)
	customer.DELETE("/handshake", handshakeHandler.Unbind)

	operator := v1.Group("/operator", middleware.RBAC(domain.RoleOperator))
	operator.POST("/jobs/:id/status", operatorHandler.AdvanceJob)
	operator.GET("/shop", operatorHandler.Shop)
	operator.POST("/shop/configure", operatorHandler.Configure)
	operator.PUT("/shop/rates", operatorHandler.UpdateRates)
	operator.POST("/shop/pause", operatorHandler.SetPaused)
	operator.GET("/history", historyHandler.List)
	operator.GET("/history/summary", historyHandler.Summary)

	return e
}
