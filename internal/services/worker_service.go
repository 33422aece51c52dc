package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/auth"
	"weigh-backend/internal/models"
	"weigh-backend/internal/repositories"
)

type WorkerService struct {
	workerRepo *repositories.WorkerRepository
	jwtManager *auth.JWTManager
}

func NewWorkerService(workerRepo *repositories.WorkerRepository, jwtManager *auth.JWTManager) *WorkerService {
	return &WorkerService{workerRepo: workerRepo, jwtManager: jwtManager}
}

// Signup registers a new field worker. Accounts always start with the
// worker role; admins are promoted out of band.
func (s *WorkerService) Signup(ctx context.Context, req *models.SignupRequest) (*models.Worker, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", apperrors.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	if existing, err := s.workerRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	worker := &models.Worker{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleWorker,
	}
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, err
	}
	worker.IsActive = true
	return worker, nil
}

// Login verifies credentials and issues a JWT. Invalid email and wrong
// password produce the same error so the response does not leak which
// accounts exist.
func (s *WorkerService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	worker, err := s.workerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !worker.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrForbidden)
	}
	if !auth.VerifyPassword(worker.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := s.jwtManager.GenerateToken(worker)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, Worker: worker}, nil
}

func (s *WorkerService) Get(ctx context.Context, id int) (*models.Worker, error) {
	return s.workerRepo.Get(ctx, id)
}
