package httpserver

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/travel-planner/internal/core/ports"
	customMiddleware "github.com/avatarctic/travel-planner/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	// Basic auth guards the project routes only when both are set.
	BasicAuthUser     string
	BasicAuthPassword string
	// MaxPlacesPerProject is echoed in the "too many places" error.
	MaxPlacesPerProject int
}

type ServerDeps struct {
	ProjectService ports.ProjectService
	PlaceService   ports.PlaceService
	// RateLimiterService may be nil, which disables rate limiting.
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	projectService ports.ProjectService
	placeService   ports.PlaceService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{}

	mw, err := customMiddleware.NewMiddlewareCollection(
		deps.RateLimiterService,
		serverConfig.BasicAuthUser,
		serverConfig.BasicAuthPassword,
		logger,
		GetRequestsTotal(),
		GetRequestDuration(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build middleware: %w", err)
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		projectService: deps.ProjectService,
		placeService:   deps.PlaceService,
		healthCheckers: deps.HealthCheckers,
		middleware:     mw,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}
