package repositories

import (
	"context"
	"time"

	"weigh-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Create appends an audit row. The table is append-only; no update or
// delete method exists on this repository.
func (r *AuditLogRepository) Create(ctx context.Context, l *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, resource, details, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::jsonb, NOW())
	`

	_, err := r.DB.Exec(ctx, query, l.ActorID, l.Action, l.Resource, l.Details)
	return err
}

// List retrieves audit logs with actor details, newest first.
func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}

	query := `
		SELECT al.id, al.actor_id, COALESCE(w.name, ''), al.action, al.resource,
		       COALESCE(al.details::text, ''), al.created_at
		FROM audit_logs al
		LEFT JOIN workers w ON w.id = al.actor_id
		ORDER BY al.created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		var createdAt time.Time
		if err := rows.Scan(&l.ID, &l.ActorID, &l.ActorName, &l.Action, &l.Resource, &l.Details, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = createdAt
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
