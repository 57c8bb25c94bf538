package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"movearena-pos/internal/config"
	"movearena-pos/internal/database"
	custommiddleware "movearena-pos/internal/middleware"
	"movearena-pos/internal/money"
	"movearena-pos/internal/repository"
	"movearena-pos/internal/service"
	"movearena-pos/internal/state"
	"movearena-pos/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	// Rate limit per client when Redis is available
	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 300,
			Window:            time.Minute,
			KeyPrefix:         "pos:ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"database": database.Health(db),
		})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	stockEntryRepo := repository.NewStockEntryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	sessionRepo := repository.NewCashierSessionRepository(db)
	tableRepo := repository.NewTableOrderRepository(db)

	// Draft store: Redis when available, in-memory otherwise
	var draftStore state.Store = state.NewMemoryStore()
	if redisClient != nil {
		draftStore = state.NewRedisStore(redisClient, time.Duration(cfg.POS.DraftTTLMinutes)*time.Minute)
	}

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
	catalogService := service.NewCatalogService(productRepo, logger)
	draftService := service.NewDraftService(draftStore, productRepo, money.Cents(cfg.POS.DeliveryFeeCents), logger)
	checkoutService := service.NewCheckoutService(productRepo, saleRepo, customerRepo, tableRepo, stockEntryRepo, logger)
	salesService := service.NewSalesService(saleRepo, productRepo, stockEntryRepo, logger)
	inventoryService := service.NewInventoryService(productRepo, stockEntryRepo, logger)
	cashierService := service.NewCashierService(sessionRepo, saleRepo, expenseRepo, logger)
	expenseService := service.NewExpenseService(expenseRepo, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	tableService := service.NewTableService(tableRepo, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)

	// Register routes
	transport.NewUserHandler(userService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewProductHandler(catalogService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewMenuHandler(logger).RegisterRoutes(router, authMiddleware)
	transport.NewDraftHandler(draftService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewCheckoutHandler(checkoutService, draftService, userService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewSalesHandler(salesService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewStockHandler(inventoryService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewCashierHandler(cashierService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewExpenseHandler(expenseService, userService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewCustomerHandler(customerService, logger).RegisterRoutes(router, authMiddleware)
	transport.NewTableHandler(tableService, draftService, logger).RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
