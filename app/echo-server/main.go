package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealsHub/app/echo-server/router"
	"dealsHub/business/category"
	dealService "dealsHub/business/deal"
	"dealsHub/business/featured"
	"dealsHub/internal/middleware"
	"dealsHub/internal/repository/store"
	"dealsHub/internal/rest"
	"dealsHub/internal/session"
	"dealsHub/internal/storage"
	"dealsHub/pkg/config"
	"dealsHub/pkg/database"
	redisdb "dealsHub/pkg/database/redis"
	"dealsHub/pkg/logger"
	"dealsHub/pkg/metrics"
	"dealsHub/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting DealsHub", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatal("Failed to ensure schema", "error", err)
	}

	// Optional redis session store: without it logins run stateless and
	// logout only clears the cookie.
	var sessionStore *session.TokenStore
	adminOnly := middleware.AdminMiddleware()
	if cfg.Redis.Enabled() {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		sessionStore = session.NewTokenStore(redisClient)
		adminOnly = middleware.AdminMiddlewareWithSession(sessionStore)
		logger.Info("Redis session store enabled")
	}

	imageStore, err := storage.NewImageStore(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", "error", err)
	}

	// Init repo
	categoryRepo := store.NewCategoryRepository(db)
	dealRepo := store.NewDealRepository(db)
	featuredRepo := store.NewFeaturedRepository(db)

	// Init service
	categoryService := category.NewCategoryService(categoryRepo, dealRepo)
	dealsService := dealService.NewDealService(dealRepo, categoryRepo, imageStore)
	featuredService := featured.NewFeaturedService(featuredRepo, dealRepo)

	// Init handler
	publicHandler := rest.NewPublicHandler(dealsService, categoryService, featuredService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	dealHandler := rest.NewDealHandler(dealsService, categoryService)
	featuredHandler := rest.NewFeaturedHandler(featuredService, dealsService)

	var authHandler *rest.AuthHandler
	if sessionStore != nil {
		authHandler = rest.NewAuthHandler(cfg.Admin, sessionStore)
	} else {
		authHandler = rest.NewAuthHandler(cfg.Admin, nil)
	}

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	router.SetupPublicRoutes(e, publicHandler)
	router.SetupAuthRoutes(e, authHandler, adminOnly)
	router.SetupDashboardRoutes(e, dealHandler, adminOnly)
	router.SetupCategoryRoutes(e, categoryHandler, adminOnly)
	router.SetupProductRoutes(e, dealHandler, adminOnly)
	router.SetupFeaturedRoutes(e, featuredHandler, adminOnly)

	e.Static("/uploads", cfg.Upload.Dir)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
