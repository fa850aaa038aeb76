package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/registryhq/birth-registry/docs"
	"github.com/registryhq/birth-registry/internal/api/handler"
	"github.com/registryhq/birth-registry/internal/api/middleware"
	"github.com/registryhq/birth-registry/internal/core/service"
	mongodb "github.com/registryhq/birth-registry/internal/infrastructure/db/mongo"
	redisdb "github.com/registryhq/birth-registry/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registry"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, jwtSecret, tokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	detailRepo := mongodb.NewDetailRepository(db)
	detailCache := redisdb.NewDetailListCache(rdb)
	detailService := service.NewDetailService(detailRepo, detailCache, log)
	detailHandler := handler.NewDetailHandler(detailService)

	postRepo := mongodb.NewPostRepository(db)
	postService := service.NewPostService(postRepo, log)
	postHandler := handler.NewPostHandler(postService)

	gate := middleware.Auth(jwtSecret, log)

	// --- API routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/protected", authHandler.Protected, gate)

	auth.POST("/post", postHandler.Create)

	auth.POST("/add", detailHandler.Add, gate)
	auth.GET("/get", detailHandler.List)
	auth.PUT("/update/:id", detailHandler.Update, gate)
	auth.DELETE("/delete/:id", detailHandler.Delete, gate)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
