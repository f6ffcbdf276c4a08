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

	"github.com/gin-gonic/gin"

	"github.com/RonUpdate/sitecf-sub001/internal/authz"
	"github.com/RonUpdate/sitecf-sub001/internal/di"
	"github.com/RonUpdate/sitecf-sub001/internal/handler"
	"github.com/RonUpdate/sitecf-sub001/internal/identity"
	"github.com/RonUpdate/sitecf-sub001/internal/middleware"
	"github.com/RonUpdate/sitecf-sub001/internal/policy"
	"github.com/RonUpdate/sitecf-sub001/internal/service"
	"github.com/RonUpdate/sitecf-sub001/pkg/config"
	"github.com/RonUpdate/sitecf-sub001/pkg/database"
	"github.com/RonUpdate/sitecf-sub001/pkg/logger"
	"github.com/RonUpdate/sitecf-sub001/pkg/redis"
	"github.com/RonUpdate/sitecf-sub001/pkg/telemetry"
)

const serviceName = "admin-gate"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting admin gate...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (session store)
	redisCfg := &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: 1 * time.Second,
	}
	rdb, err := redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Redis connection failed: %v", err))
	}
	defer rdb.Close()
	appLog.Info("Redis connected")

	// Credential token secret
	tokenSecret := cfg.Auth.TokenSecret
	if tokenSecret == "" {
		if cfg.IsDevelopment() {
			tokenSecret = "dev-only-secret-key-do-not-use-in-production"
			appLog.Warn("AUTH_TOKEN_SECRET not set, using dev-only default (NEVER use in production)")
		} else {
			appLog.Fatal("AUTH_TOKEN_SECRET environment variable is required in production")
		}
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:          db,
		Redis:       rdb,
		ServiceName: serviceName,
		StoreConfig: &identity.RedisStoreConfig{
			TokenSecret: tokenSecret,
			Issuer:      cfg.Auth.Issuer,
		},
		ServiceConfig: &service.AuthServiceConfig{
			Policy:        policy.NewSessionPolicy(cfg.Auth.ShortSessionTTL, cfg.Auth.LongSessionTTL),
			AdminHomePath: cfg.Auth.AdminHomePath,
		},
		HandlerConfig: &handler.AuthHandlerConfig{
			CookieName:   cfg.Auth.CookieName,
			CookieDomain: cfg.Auth.CookieDomain,
			CookieSecure: cfg.Auth.CookieSecure,
			HomePath:     cfg.Auth.AdminHomePath,
		},
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS())

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(serviceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// Admin panel routes
	admin := router.Group("/admin")
	admin.Use(middleware.Session(container.AuthService, cfg.Auth.CookieName))
	{
		// Entry and exit points; no gate, logout must work for anyone
		admin.POST("/login", container.AuthHandler.Login)
		admin.POST("/logout", container.AuthHandler.Logout)
		admin.GET("/logout", container.AuthHandler.LogoutRedirect)

		// Session management requires authentication
		protected := admin.Group("")
		protected.Use(middleware.RequireSession(cfg.Auth.LoginPath))
		{
			protected.GET("/session", container.AuthHandler.Session)
			protected.POST("/session/refresh", container.AuthHandler.Refresh)
		}

		// Content management, each route gated on its single capability
		categories := admin.Group("/categories")
		{
			categories.POST("", middleware.RequireCapability(authz.CapCreateCategory), container.AdminHandler.CreateCategory)
			categories.GET("/:id", middleware.RequireSession(cfg.Auth.LoginPath), container.AdminHandler.GetCategory)
			categories.PUT("/:id", middleware.RequireCapability(authz.CapEditCategory), container.AdminHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireCapability(authz.CapDeleteCategory), container.AdminHandler.DeleteCategory)
		}

		pages := admin.Group("/pages")
		{
			pages.POST("", middleware.RequireCapability(authz.CapCreateColoringPage), container.AdminHandler.CreateColoringPage)
			pages.GET("/:id", middleware.RequireSession(cfg.Auth.LoginPath), container.AdminHandler.GetColoringPage)
			pages.PUT("/:id", middleware.RequireCapability(authz.CapEditColoringPage), container.AdminHandler.UpdateColoringPage)
			pages.DELETE("/:id", middleware.RequireCapability(authz.CapDeleteColoringPage), container.AdminHandler.DeleteColoringPage)
		}
	}

	// Create HTTP server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Admin gate listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
