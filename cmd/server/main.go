package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/travel-planner/configs"
	"github.com/avatarctic/travel-planner/internal/application/services"
	"github.com/avatarctic/travel-planner/internal/core/ports"
	"github.com/avatarctic/travel-planner/internal/infrastructure/artic"
	"github.com/avatarctic/travel-planner/internal/infrastructure/db"
	"github.com/avatarctic/travel-planner/internal/infrastructure/health"
	"github.com/avatarctic/travel-planner/internal/infrastructure/httpserver"
	"github.com/avatarctic/travel-planner/internal/infrastructure/redis"
	"github.com/avatarctic/travel-planner/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(&cfg.Log)
	logger.Info("Starting Travel Planner API...")

	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database)}

	// Redis only backs the per-client rate limiter.
	var rateLimiterService ports.RateLimiterService
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		rateLimiterService = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(redisClient),
			&services.RateLimiterConfig{
				RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         cfg.RateLimit.KeyPrefix,
			},
			logger,
		)
		hcSlice = append(hcSlice, health.NewRedisHealthChecker(redisClient))
	} else {
		logger.Warn("Redis disabled - rate limiting is off")
	}

	// One title cache for the whole process, shared by every request.
	articConfig := &artic.Config{
		BaseURL:      cfg.Artic.BaseURL,
		Timeout:      cfg.Artic.Timeout,
		CacheTTL:     cfg.Artic.CacheTTL,
		CacheMaxSize: cfg.Artic.CacheMaxSize,
	}
	titleCache := artic.NewTitleCache(articConfig)
	if titleCache == nil {
		logger.Info("Art Institute title cache disabled")
	} else {
		logger.WithField("ttl", cfg.Artic.CacheTTL).Info("Art Institute title cache enabled")
	}
	articClient := artic.NewClient(articConfig, titleCache, logger)

	projectRepo := repositories.NewProjectRepository(database, logger)
	placeRepo := repositories.NewPlaceRepository(database, logger)

	maxPlaces := cfg.Planner.MaxPlacesPerProject
	projectService := services.NewProjectService(projectRepo, articClient, maxPlaces, logger)
	placeService := services.NewPlaceService(placeRepo, projectRepo, articClient, maxPlaces, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:                cfg.Server.Host,
		Port:                cfg.Server.Port,
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
		IdleTimeout:         cfg.Server.IdleTimeout,
		TLSCertFile:         cfg.Server.TLSCertFile,
		TLSKeyFile:          cfg.Server.TLSKeyFile,
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		Environment:         cfg.Server.Environment,
		BasicAuthUser:       cfg.Auth.BasicUser,
		BasicAuthPassword:   cfg.Auth.BasicPassword,
		MaxPlacesPerProject: maxPlaces,
	}

	deps := httpserver.ServerDeps{
		ProjectService:     projectService,
		PlaceService:       placeService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server, err := httpserver.NewServer(serverConfig, logger, deps)
	if err != nil {
		logger.Fatal("Failed to initialize server:", err)
	}
	if cfg.Auth.BasicEnabled() {
		logger.Info("Basic auth enabled for project routes")
	}

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
