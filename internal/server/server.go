package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalog-orders/internal/config"
	"catalog-orders/internal/database"
	custommiddleware "catalog-orders/internal/middleware"
	"catalog-orders/internal/repository"
	"catalog-orders/internal/service"
	"catalog-orders/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const closeTimeout = 10 * time.Second

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	gw     database.Gateway
	redis  *redis.Client
}

// NewServer wires the gateway into the services and handlers. redisClient
// may be nil, in which case requests are not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, gw database.Gateway, redisClient *redis.Client) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, gw, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		gw:     gw,
		redis:  redisClient,
	}

	return server
}

// NewRouter builds the HTTP handler tree
func NewRouter(cfg *config.Config, logger *zap.Logger, gw database.Gateway, redisClient *redis.Client) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "catalog_orders:rate_limit",
		}, logger))
	}

	router.NotFound(custommiddleware.NotFoundHandler)
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler)

	// Initialize repositories
	productRepo := repository.NewProductRepository(gw)
	orderRepo := repository.NewOrderRepository(gw)

	// Initialize services
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)

	// Register routes
	transport.NewRootHandler(gw, logger).RegisterRoutes(router)
	transport.NewProductHandler(productService, logger).RegisterRoutes(router)
	transport.NewOrderHandler(orderService, logger).RegisterRoutes(router)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if s.gw != nil {
		if err := s.gw.Close(ctx); err != nil {
			s.logger.Error("Failed to close document store", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
