package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skatespot/skatespot-api/internal/api/handler"
	"github.com/skatespot/skatespot-api/internal/api/middleware"
	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/security"
	"github.com/skatespot/skatespot-api/internal/core/service"
	"github.com/skatespot/skatespot-api/internal/infrastructure/config"
	mongodb "github.com/skatespot/skatespot-api/internal/infrastructure/db/mongo"
	redisdb "github.com/skatespot/skatespot-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("skatespot"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	parkRepo := mongodb.NewParkRepository(db)
	featureRepo := mongodb.NewFeatureRepository(db)
	cache := redisdb.NewCache(rdb)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, log)
	parkService := service.NewParkService(parkRepo, featureRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	parkHandler := handler.NewParkHandler(parkService)
	featureHandler := handler.NewFeatureHandler(parkService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authenticated := middleware.CurrentUser(authService)
	staffOnly := middleware.RBAC(domain.RoleModerator, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth (public) ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Parks (reads public, writes gated) ---
	v1.GET("/parks", parkHandler.Search)
	v1.GET("/parks/:id", parkHandler.Get)
	v1.POST("/parks", parkHandler.Create, authenticated, staffOnly)
	v1.PATCH("/parks/:id", parkHandler.Update, authenticated, staffOnly)
	v1.DELETE("/parks/:id", parkHandler.Delete, authenticated, adminOnly)
	v1.POST("/parks/:id/ratings", parkHandler.Rate, authenticated)

	// --- Features (reads public, writes gated) ---
	v1.GET("/features", featureHandler.List)
	v1.GET("/features/:id", featureHandler.Get)
	v1.POST("/features", featureHandler.Create, authenticated, staffOnly)
	v1.PATCH("/features/:id", featureHandler.Update, authenticated, staffOnly)
	v1.DELETE("/features/:id", featureHandler.Delete, authenticated, adminOnly)

	// --- Users ---
	v1.GET("/users/me", userHandler.Me, authenticated)
	v1.PATCH("/users/me", userHandler.UpdateMe, authenticated)
	v1.POST("/users/me/password", userHandler.ChangePassword, authenticated)
	v1.GET("/users", userHandler.List, authenticated, staffOnly)
	v1.GET("/users/:id", userHandler.Get, authenticated, staffOnly)
	v1.PATCH("/users/:id", userHandler.Update, authenticated, staffOnly)
	v1.DELETE("/users/:id", userHandler.Delete, authenticated, adminOnly)
	v1.POST("/users/:id/undelete", userHandler.Undelete, authenticated, adminOnly)
	v1.POST("/users/:id/activate", userHandler.Activate, authenticated, adminOnly)
	v1.POST("/users/:id/deactivate", userHandler.Deactivate, authenticated, adminOnly)

	return e
}
