package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"weigh-backend/internal/auth"
	"weigh-backend/internal/cache"
	"weigh-backend/internal/config"
	"weigh-backend/internal/database"
	"weigh-backend/internal/db"
	"weigh-backend/internal/evidence"
	"weigh-backend/internal/geocode"
	"weigh-backend/internal/handlers"
	"weigh-backend/internal/health"
	h "weigh-backend/internal/http"
	"weigh-backend/internal/middleware"
	"weigh-backend/internal/repositories"
	"weigh-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run pending migrations before serving traffic
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Redis is optional; without it geocode results are simply not cached
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, continuing without cache: %v", err)
	}

	// Repositories
	workerRepo := repositories.NewWorkerRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	statsRepo := repositories.NewStatisticsRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	workerService := services.NewWorkerService(workerRepo, jwtManager)
	entryService := services.NewEntryService(entryRepo, statsRepo, auditRepo)
	compensationService := services.NewCompensationService(settingRepo, statsRepo, auditRepo)
	leaderboardService := services.NewLeaderboardService(entryRepo, statsRepo, settingRepo)

	// Evidence pipeline
	uploader, err := evidence.NewS3Uploader(cfg.Storage)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	pipeline := evidence.NewPipeline(
		evidence.NewCompressor(evidence.DefaultCompressorPolicy),
		evidence.NewBandRenderer(),
		uploader,
	)

	geocoder := geocode.NewClient(cfg.Geocoder.BaseURL, time.Duration(cfg.Geocoder.CacheTTLSeconds)*time.Second)

	// Handlers
	authHandler := handlers.NewAuthHandler(workerService)
	entryHandler := handlers.NewEntryHandler(entryService)
	evidenceHandler := handlers.NewEvidenceHandler(pipeline, geocoder)
	compensationHandler := handlers.NewCompensationHandler(compensationService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	preferenceHandler := handlers.NewPreferenceHandler(settingRepo)
	auditLogHandler := handlers.NewAuditLogHandler(auditRepo)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, workerRepo)

	router := h.NewRouter(
		authHandler,
		entryHandler,
		evidenceHandler,
		compensationHandler,
		leaderboardHandler,
		preferenceHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
