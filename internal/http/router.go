package http

import (
	"net/http"

	"weigh-backend/internal/handlers"
	"weigh-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	entryHandler *handlers.EntryHandler,
	evidenceHandler *handlers.EvidenceHandler,
	compensationHandler *handlers.CompensationHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	preferenceHandler *handlers.PreferenceHandler,
	auditLogHandler *handlers.AuditLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Profile
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")
	meAPI.HandleFunc("/earnings", compensationHandler.MyEarnings).Methods("GET")

	// Protected API routes - Entries
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.Use(authMiddleware.Authenticate)
	entriesAPI.HandleFunc("", entryHandler.ListEntries).Methods("GET")
	entriesAPI.HandleFunc("", entryHandler.CreateEntry).Methods("POST")
	entriesAPI.HandleFunc("/evidence", evidenceHandler.Upload).Methods("POST")
	entriesAPI.HandleFunc("/bulk-status", authMiddleware.RequireRole("admin")(http.HandlerFunc(entryHandler.BulkUpdateStatus)).ServeHTTP).Methods("PATCH")
	entriesAPI.HandleFunc("/bulk-delete", authMiddleware.RequireRole("admin")(http.HandlerFunc(entryHandler.BulkDelete)).ServeHTTP).Methods("POST")
	entriesAPI.HandleFunc("/{id}", entryHandler.GetEntry).Methods("GET")
	entriesAPI.HandleFunc("/{id}/note", entryHandler.UpdateNote).Methods("PATCH")
	entriesAPI.HandleFunc("/{id}/status", authMiddleware.RequireRole("admin")(http.HandlerFunc(entryHandler.UpdateStatus)).ServeHTTP).Methods("PATCH")
	entriesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(entryHandler.DeleteEntry)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Compensation settings (admin only)
	compensationAPI := r.PathPrefix("/api/compensation").Subrouter()
	compensationAPI.Use(authMiddleware.Authenticate)
	compensationAPI.HandleFunc("/settings", compensationHandler.GetSettings).Methods("GET")
	compensationAPI.HandleFunc("/settings", authMiddleware.RequireRole("admin")(http.HandlerFunc(compensationHandler.UpdateSettings)).ServeHTTP).Methods("PUT")
	compensationAPI.HandleFunc("/workers/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(compensationHandler.WorkerEarnings)).ServeHTTP).Methods("GET")

	// Protected API routes - Leaderboard
	leaderboardAPI := r.PathPrefix("/api/leaderboard").Subrouter()
	leaderboardAPI.Use(authMiddleware.Authenticate)
	leaderboardAPI.HandleFunc("", leaderboardHandler.GetLeaderboard).Methods("GET")

	// Protected API routes - Worker preferences
	preferencesAPI := r.PathPrefix("/api/preferences").Subrouter()
	preferencesAPI.Use(authMiddleware.Authenticate)
	preferencesAPI.HandleFunc("/{key}", preferenceHandler.GetPreference).Methods("GET")
	preferencesAPI.HandleFunc("/{key}", preferenceHandler.SetPreference).Methods("PUT")

	// Protected API routes - Audit logs (admin only)
	auditAPI := r.PathPrefix("/api/audit-logs").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditLogHandler.ListLogs)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
