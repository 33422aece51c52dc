package middleware

import (
	"context"
	"net/http"
	"strings"

	"weigh-backend/internal/auth"
	"weigh-backend/internal/repositories"
)

type contextKey string

const WorkerIDKey contextKey = "worker_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	workerRepo *repositories.WorkerRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, workerRepo *repositories.WorkerRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		workerRepo: workerRepo,
	}
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Check database for current worker status (for immediate permission updates)
		worker, err := m.workerRepo.Get(r.Context(), claims.WorkerID)
		if err != nil {
			http.Error(w, "Worker not found", http.StatusUnauthorized)
			return
		}

		if !worker.IsActive {
			http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
			return
		}

		// Add worker info to context (using database values for real-time updates)
		ctx := context.WithValue(r.Context(), WorkerIDKey, worker.ID)
		ctx = context.WithValue(ctx, EmailKey, worker.Email)
		ctx = context.WithValue(ctx, RoleKey, worker.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWorkerIDFromContext extracts worker ID from request context
func GetWorkerIDFromContext(ctx context.Context) (int, bool) {
	workerID, ok := ctx.Value(WorkerIDKey).(int)
	return workerID, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// RequireRole is a middleware that ensures the worker has one of the allowed roles
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetRoleFromContext(r.Context())

			hasRole := false
			for _, allowed := range allowedRoles {
				if role == allowed {
					hasRole = true
					break
				}
			}

			if !hasRole {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

// RequireAdmin is a middleware that ensures the worker has admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole("admin")(next)
}
