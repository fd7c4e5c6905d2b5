package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"atelier/internal/auth"
	"atelier/internal/config"
	"atelier/internal/database"
	custommiddleware "atelier/internal/middleware"
	"atelier/internal/repository"
	"atelier/internal/service"
	"atelier/internal/storage"
	"atelier/internal/store"
	"atelier/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Hour

// HealthFunc reports the health of the table store
type HealthFunc func(ctx context.Context) map[string]string

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
	store  *store.Store
}

// NewServer wires the store, services and handlers over the database pool
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, db *database.Service) (*Server, error) {
	// Initialize repositories and the synchronization store
	productRepo := repository.NewProductRepository(db.DB())
	sectionRepo := repository.NewHomepageConfigRepository(db.DB())
	st := store.New(productRepo, sectionRepo, logger)

	bucket, err := storage.NewBucket(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage bucket: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, unlock attempts will not be limited", zap.Error(err))
		}
	}

	router := NewRouter(cfg, logger, db.Health, st, bucket, redisClient)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      otelhttp.NewHandler(router, "atelier"),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		store:  st,
	}

	return server, nil
}

// NewRouter builds the HTTP routes. redisClient may be nil, which disables unlock rate limiting.
func NewRouter(cfg *config.Config, logger *zap.Logger, health HealthFunc, st *store.Store, bucket storage.Bucket, redisClient *redis.Client) chi.Router {
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := health(r.Context())
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, stats)
	})

	if local, ok := bucket.(*storage.LocalBucket); ok {
		router.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(local.Root()))))
	}

	// Initialize services
	gate := auth.NewPassphraseGate(cfg.Admin)
	catalogService := service.NewCatalogService(st)
	cartService := service.NewCartService(st)
	adminService := service.NewAdminService(st, bucket, logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	shopperHandler := transport.NewShopperHandler(cartService, logger)
	adminHandler := transport.NewAdminHandler(adminService, gate, logger)

	unlockLimiter := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		unlockLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.Admin.UnlockAttempts,
			Window:            cfg.Admin.UnlockWindow,
			KeyPrefix:         "atelier:unlock",
		}, logger)
	}

	// Register routes
	catalogHandler.RegisterRoutes(router)
	shopperHandler.RegisterRoutes(router, custommiddleware.SessionMiddleware(st, !cfg.IsDevelopment()))
	adminHandler.RegisterRoutes(router, unlockLimiter, custommiddleware.AuthMiddleware(gate, logger))

	return router
}

// Store exposes the synchronization store for startup refresh
func (s *Server) Store() *store.Store {
	return s.store
}

// SweepSessions drops idle shopper sessions until ctx is done
func (s *Server) SweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.PruneSessions(custommiddleware.SessionTTL); n > 0 {
				s.logger.Info("Pruned idle sessions", zap.Int("count", n))
			}
		}
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
