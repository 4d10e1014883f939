package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wrenbot/wren/backend/internal/api/middleware"
	"github.com/wrenbot/wren/backend/internal/http"
	"github.com/wrenbot/wren/backend/internal/infrastructure/config"
	"github.com/wrenbot/wren/backend/internal/infrastructure/logging"
	"github.com/wrenbot/wren/backend/internal/infrastructure/monitoring"
	"github.com/wrenbot/wren/backend/internal/providers/calculator"
	"github.com/wrenbot/wren/backend/internal/providers/numbers"
	"github.com/wrenbot/wren/backend/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	registry *service.Registry
	metrics  *monitoring.Metrics
	srv      *nethttp.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, err
	}

	registry := service.NewRegistry()
	metrics := monitoring.NewMetrics()

	logger.Info("registering service providers")
	registerProviders(registry, cfg, metrics, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	router.Use(monitoring.Middleware(metrics))

	handlers := http.NewHandlers(registry, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  metrics,
		srv: &nethttp.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

// Logger exposes the server logger.
func (s *Server) Logger() *logging.Logger {
	return s.logger
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("starting server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	return s.logger.Sync()
}

func registerProviders(registry *service.Registry, cfg *config.Config, metrics *monitoring.Metrics, logger *logging.Logger) {
	calcProvider := calculator.NewProviderWithTimeout(cfg.Engine.EvalTimeout).WithMetrics(metrics)
	if err := registry.Register(calcProvider); err != nil {
		logger.Warn("failed to register calculator provider", zap.Error(err))
	}

	numbersProvider := numbers.NewProvider()
	if err := registry.Register(numbersProvider); err != nil {
		logger.Warn("failed to register numbers provider", zap.Error(err))
	}

	stats := registry.Stats()
	logger.Info("providers registered",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)
}
