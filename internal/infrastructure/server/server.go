package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	api "github.com/GriffinCanCode/calc/internal/api/http"
	"github.com/GriffinCanCode/calc/internal/api/middleware"
	"github.com/GriffinCanCode/calc/internal/api/ws"
	"github.com/GriffinCanCode/calc/internal/infrastructure/config"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/calc/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/calc/internal/providers/calc"
	"github.com/GriffinCanCode/calc/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	registry *service.Registry
	provider *calc.Provider
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing calc server",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("default_mode", cfg.Eval.Mode().String()),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("calc", logger.Logger)

	provider := calc.NewProvider(calc.Options{
		DefaultMode:   cfg.Eval.Mode(),
		StackCapacity: cfg.Eval.StackCapacity,
		MaxBatchSize:  cfg.Eval.MaxBatchSize,
		Logger:        logger,
		Metrics:       metrics,
	})
	registry := service.NewRegistry()
	if err := registry.Register(provider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register calc provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		rl := middleware.RateLimitFromConfig(cfg.RateLimit)
		logger.Info("Rate limiting enabled",
			zap.Int("rps", rl.RequestsPerSecond),
			zap.Int("burst", rl.Burst),
		)
		router.Use(middleware.RateLimit(rl))

		if global, ok := middleware.GlobalRateLimitFromConfig(cfg.RateLimit); ok {
			logger.Info("Global rate limiting enabled",
				zap.Int("rps", global.RequestsPerSecond),
				zap.Int("burst", global.Burst),
			)
			router.Use(middleware.GlobalRateLimit(global))
		}
	}

	handlers := api.NewHandlers(provider, registry, metrics, logger, cfg.Eval.MaxLineLength)
	wsHandler := ws.NewHandler(provider, metrics, logger, cfg.Eval.MaxLineLength)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats)

	// Evaluation
	router.POST("/evaluate", handlers.Evaluate)
	router.POST("/validate", handlers.Validate)
	router.POST("/batch", handlers.Batch)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		handler:  compress(router, "/stream"),
		registry: registry,
		provider: provider,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// compress gzips responses for clients that accept it. Paths in skip are
// served directly so websocket upgrades can hijack the connection.
func compress(next http.Handler, skip ...string) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range skip {
			if r.URL.Path == p {
				next.ServeHTTP(w, r)
				return
			}
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler exposes the full HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if limit := s.config.Server.MaxConnections; limit > 0 {
		ln = netutil.LimitListener(ln, limit)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server",
			zap.String("addr", addr),
			zap.Int("max_connections", s.config.Server.MaxConnections),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close releases background resources
func (s *Server) Close() error {
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}
