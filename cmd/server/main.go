package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/komorebi/backend/internal/application/cart"
	catalogapp "github.com/komorebi/backend/internal/application/catalog"
	curatorapp "github.com/komorebi/backend/internal/application/curator"
	identityapp "github.com/komorebi/backend/internal/application/identity"
	inquiryapp "github.com/komorebi/backend/internal/application/inquiry"
	orderapp "github.com/komorebi/backend/internal/application/order"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/infrastructure/auth"
	"github.com/komorebi/backend/internal/infrastructure/config"
	"github.com/komorebi/backend/internal/infrastructure/curator"
	"github.com/komorebi/backend/internal/infrastructure/event"
	"github.com/komorebi/backend/internal/infrastructure/logger"
	"github.com/komorebi/backend/internal/infrastructure/persistence"
	"github.com/komorebi/backend/internal/infrastructure/storage"
	"github.com/komorebi/backend/internal/interfaces/http/handler"
	"github.com/komorebi/backend/internal/interfaces/http/middleware"
	"github.com/komorebi/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Komorebi backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and the featured list. Outside
	// production a missing Redis falls back to in-memory stores so the
	// storefront still runs on a laptop.
	var tokenBlacklist auth.TokenBlacklist
	var featuredStore catalog.FeaturedStore

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	redisErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if redisErr != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(redisErr))
		}
		log.Warn("Redis unavailable, using in-memory stores", zap.Error(redisErr))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		featuredStore = persistence.NewInMemoryFeaturedStore()
	} else {
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		featuredStore = persistence.NewRedisFeaturedStore(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Schema migration and seed data outside production
	if cfg.App.Env != "production" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
		seeder := persistence.NewSeeder(db.DB, featuredStore, log)
		adminPassword := os.Getenv("KOMOREBI_SEED_ADMIN_PASSWORD")
		if adminPassword == "" {
			adminPassword = "komorebi-admin"
		}
		if err := seeder.Seed(context.Background(), adminPassword); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	inquiryRepo := persistence.NewGormInquiryRepository(db.DB)
	txRunner := persistence.NewGormTxRunner(db.DB)

	// Object storage for product imagery
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Info("Using stub object storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Curator note generator
	var noteGenerator curatorapp.NoteGenerator
	if cfg.Curator.Provider == "gemini" {
		gemini, err := curator.NewGeminiGenerator(cfg.Curator)
		if err != nil {
			log.Fatal("Failed to initialize note generator", zap.Error(err))
		}
		noteGenerator = gemini
	} else {
		log.Info("Using stub curator note generator")
		noteGenerator = curator.NewStubGenerator()
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, log)
	productService := catalogapp.NewProductService(productRepo, variantRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	featuredService := catalogapp.NewFeaturedService(featuredStore, productRepo)
	imageService := catalogapp.NewImageService(productRepo, objectStorage, cfg.Storage.PublicBaseURL, log)
	cartService := cartapp.NewService(cartRepo, productRepo, variantRepo)
	orderService := orderapp.NewService(orderRepo, cartRepo, productRepo, variantRepo, txRunner, log)
	inquiryService := inquiryapp.NewService(inquiryRepo, log)
	noteService := curatorapp.NewService(productRepo, noteGenerator, log)

	// Event bus with the order activity audit trail
	eventBus := event.NewInMemoryEventBus(log)
	activityHandler := event.NewOrderActivityHandler(log)
	eventBus.Subscribe(activityHandler, activityHandler.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService, noteService),
		Category: handler.NewCategoryHandler(categoryService),
		Featured: handler.NewFeaturedHandler(featuredService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Inquiry:  handler.NewInquiryHandler(inquiryService),
		Image:    handler.NewImageHandler(imageService),
		System:   handler.NewSystemHandler(db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body limit, then an optional global
	// rate limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Routes: public storefront, member, admin
	authMW := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, registrar := range router.Routes(handlers, authMW) {
		r.Register(registrar)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
