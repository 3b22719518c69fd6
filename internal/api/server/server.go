package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	_ "voice-transcriber/docs" // Generated swagger docs
	"voice-transcriber/internal/api/middleware"
	"voice-transcriber/internal/api/v1/dto"
	v1routes "voice-transcriber/internal/api/v1/routes"
	"voice-transcriber/internal/api/v1/services"
	"voice-transcriber/internal/app/metrics"
	"voice-transcriber/internal/config"
	"voice-transcriber/internal/version"
)

// Server represents the API server
type Server struct {
	config     config.ServerConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	listener   net.Listener
	done       chan error
}

// NewServer creates a new API server
func NewServer(
	cfg *config.ServiceConfig,
	processor services.AudioProcessor,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	switch cfg.Server.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.NoRoute(middleware.NotFound())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Unix(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.ServiceInfo{
			Message:       "Voice Transcriber API",
			Version:       version.Version,
			Provider:      cfg.Provider.Name,
			Documentation: "/swagger/index.html",
			Endpoints: map[string]string{
				"health":        "/health",
				"metrics":       "/metrics",
				"process_audio": "POST /process-audio",
			},
		})
	})

	v1routes.RegisterRoutes(router, &v1routes.ServiceContainer{
		AudioProcessor:    processor,
		StrictStatusCodes: cfg.Server.StrictStatusCodes,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		config:     cfg.Server,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
		done:       make(chan error, 1),
	}
}

// Start binds the listen address and serves in the background.
// Bind failures are returned; later serve failures are delivered on Done.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("host", s.config.Host),
		zap.String("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go func() {
		err := s.httpServer.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", zap.Error(err))
			s.done <- err
		}
		close(s.done)
	}()

	s.logger.Info("API server started successfully", zap.String("address", listener.Addr().String()))
	return nil
}

// Done is closed when the server stops serving; it first yields the error if serving failed
func (s *Server) Done() <-chan error {
	return s.done
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
