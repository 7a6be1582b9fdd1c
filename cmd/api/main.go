package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/account-intel/pkg/validator"

	"github.com/johnquangdev/account-intel/internal/adapter/handler"
	"github.com/johnquangdev/account-intel/internal/adapter/repository"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/internal/infrastructure/cache"
	"github.com/johnquangdev/account-intel/internal/infrastructure/database"
	"github.com/johnquangdev/account-intel/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/account-intel/internal/infrastructure/external/chatexport"
	"github.com/johnquangdev/account-intel/internal/infrastructure/external/enrichment"
	"github.com/johnquangdev/account-intel/internal/infrastructure/external/gcal"
	httpmw "github.com/johnquangdev/account-intel/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/account-intel/internal/infrastructure/metrics"
	"github.com/johnquangdev/account-intel/internal/infrastructure/storage"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
	"github.com/johnquangdev/account-intel/internal/usecase/collect"
	"github.com/johnquangdev/account-intel/internal/usecase/competitive"
	"github.com/johnquangdev/account-intel/internal/usecase/dossier"
	"github.com/johnquangdev/account-intel/internal/usecase/goals"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
	"github.com/johnquangdev/account-intel/internal/usecase/profile"
	"github.com/johnquangdev/account-intel/internal/usecase/talking"
	"github.com/johnquangdev/account-intel/pkg/config"
	"github.com/johnquangdev/account-intel/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize metrics
	metricsManager := metrics.NewManager()
	e.Use(httpmw.Metrics(metricsManager))

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.Migrate(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize cache, falling back to memory when Redis is unreachable
	log.Println("📦 Connecting to Redis...")
	var cacheStore cache.Store
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		cacheStore = redisStore
	}

	// Initialize object storage for dossier archives
	log.Println("📦 Connecting to object storage...")
	var uploader sources.Uploader
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Object storage unavailable (%v), archiving disabled", err)
	} else {
		uploader = minioClient
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	dossierRepo := repository.NewDossierRepository(db)

	// Initialize source adapters; unconfigured sources are skipped
	log.Println("🔌 Initializing source adapters...")
	var callSource sources.CallSource
	if cfg.Sources.CallFeedURL != "" {
		callSource = assemblyai.NewClient(
			cfg.Sources.CallFeedURL,
			cfg.Sources.CallFeedToken,
			cfg.Sources.AssemblyAIKey,
			logger,
		)
	}
	var chatSource sources.ChatSource
	if cfg.Sources.ChatExportURL != "" {
		chatSource = chatexport.NewClient(cfg.Sources.ChatExportURL, cfg.Sources.ChatExportToken)
	}
	var calendarSource sources.CalendarSource
	if cfg.Sources.GoogleRefreshToken != "" {
		calendarSource = gcal.NewClient(
			cfg.Sources.GoogleClientID,
			cfg.Sources.GoogleClientSecret,
			cfg.Sources.GoogleRefreshToken,
		)
	}
	var enrichmentSource sources.EnrichmentSource
	if cfg.Sources.EnrichmentURL != "" {
		enrichmentSource = enrichment.NewClient(cfg.Sources.EnrichmentURL, cfg.Sources.EnrichmentKey)
	}

	collector := collect.NewCollector(callSource, chatSource, calendarSource, enrichmentSource, metricsManager, logger)

	// Initialize pipeline stages
	log.Println("🧠 Initializing pipeline...")
	merger := merge.NewMerger(cfg.Pipeline.InternalDomains, logger)
	analyzer := analysis.NewAnalyzer(logger)
	profiler := profile.NewProfiler(logger)
	goalGen := goals.NewGenerator(logger)
	talkingGen := talking.NewGenerator(logger)
	extractor := competitive.NewExtractor(logger)
	dossierService := dossier.NewService(merger, analyzer, profiler, goalGen, talkingGen, extractor, logger)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authMW := httpmw.NewAuthMiddleware(jwtManager, logger)

	// Initialize dossier handler
	log.Println("🚀 Initializing dossier handler...")
	dossierHandler := handler.NewDossierHandler(
		dossierService,
		collector,
		dossierRepo,
		cacheStore,
		uploader,
		metricsManager,
		cfg,
		logger,
	)
	log.Println("✅ Dossier handler initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, dossierHandler, metricsManager)
	router.Setup(e, authMW.Authenticate)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
