package handlers

import (
	"encoding/json"
	"net/http"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/middleware"
	"weigh-backend/internal/models"
	"weigh-backend/internal/services"
	"weigh-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.WorkerService
}

func NewAuthHandler(s *services.WorkerService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	worker, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, worker)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		// Credential failures map to 401 regardless of the tagged kind.
		utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated worker's own profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.GetWorkerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Worker ID not found in context")
		return
	}

	worker, err := h.Service.Get(r.Context(), workerID)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, worker)
}
