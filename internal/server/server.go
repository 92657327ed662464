package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lumenos/quickinput/internal/config"
	"github.com/lumenos/quickinput/internal/logging"
	"github.com/lumenos/quickinput/internal/middleware"
	"github.com/lumenos/quickinput/internal/monitoring"
	"github.com/lumenos/quickinput/internal/quickinput"
	"github.com/lumenos/quickinput/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	ctrl    *quickinput.Controller
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics

	httpSrv *http.Server
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("initializing quick-input service",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := monitoring.New(registry)

	ctrl := quickinput.New(
		quickinput.WithLogger(logger.Component("controller")),
		quickinput.WithMetrics(metrics),
		quickinput.WithQueueSize(cfg.Scheduler.QueueSize),
	)

	wsHandler := ws.NewHandler(ctrl, logger, metrics, ws.Config{
		EventsPerSecond: cfg.RateLimit.EventsPerSecond,
		Burst:           cfg.RateLimit.Burst,
		RateLimit:       cfg.RateLimit.Enabled,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.RequestBurst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.RequestBurst,
		}))
	}

	router.GET("/", root)
	router.GET("/health", health(ctrl, metrics))
	router.GET("/sessions", sessions(ctrl))
	router.GET("/ws", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	logger.Info("server initialized")

	return &Server{
		router:  router,
		ctrl:    ctrl,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Controller exposes the quick-input controller, for embedding the
// server in a larger process.
func (s *Server) Controller() *quickinput.Controller {
	return s.ctrl
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting HTTP server", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, drains in-flight requests, and
// closes the controller loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	s.ctrl.Close()
	s.logger.Sync()
	return err
}

func root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "quickinput",
		"status":  "running",
	})
}

func health(ctrl *quickinput.Controller, metrics *monitoring.Metrics) gin.HandlerFunc {
	start := time.Now()
	return func(c *gin.Context) {
		metrics.UpdateUptime()
		stats := ctrl.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":           "healthy",
			"uptime_seconds":   int64(time.Since(start).Seconds()),
			"sessions_active":  stats.Active,
			"sessions_created": stats.Created,
		})
	}
}

func sessions(ctrl *quickinput.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := ctrl.Stats()
		c.JSON(http.StatusOK, gin.H{
			"active":  stats.Active,
			"created": stats.Created,
		})
	}
}
