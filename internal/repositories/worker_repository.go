package repositories

import (
	"context"
	"errors"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkerRepository struct {
	DB *pgxpool.Pool
}

func NewWorkerRepository(db *pgxpool.Pool) *WorkerRepository {
	return &WorkerRepository{DB: db}
}

func (r *WorkerRepository) Create(ctx context.Context, w *models.Worker) error {
	query := `
		INSERT INTO workers (name, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query, w.Name, w.Email, w.PasswordHash, w.Role).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

func (r *WorkerRepository) Get(ctx context.Context, id int) (*models.Worker, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		 FROM workers WHERE id=$1`, id)

	var w models.Worker
	err := row.Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		 FROM workers WHERE email=$1`, email)

	var w models.Worker
	err := row.Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]*models.Worker, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		 FROM workers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		var w models.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}
