package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"weigh-backend/internal/apperrors"
	"weigh-backend/internal/middleware"
	"weigh-backend/internal/models"
	"weigh-backend/internal/services"
	"weigh-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CompensationHandler struct {
	Service *services.CompensationService
}

func NewCompensationHandler(s *services.CompensationService) *CompensationHandler {
	return &CompensationHandler{Service: s}
}

func (h *CompensationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

func (h *CompensationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	if err := h.Service.UpdateSettings(r.Context(), &req, workerID); err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Settings updated"})
}

// MyEarnings returns the authenticated worker's derived earnings.
func (h *CompensationHandler) MyEarnings(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.GetWorkerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Worker ID not found in context")
		return
	}

	h.writeEarnings(w, r, workerID)
}

// WorkerEarnings returns any worker's derived earnings. Admin only.
func (h *CompensationHandler) WorkerEarnings(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid worker id")
		return
	}

	h.writeEarnings(w, r, id)
}

func (h *CompensationHandler) writeEarnings(w http.ResponseWriter, r *http.Request, workerID int) {
	stats, breakdown, err := h.Service.WorkerEarnings(r.Context(), workerID)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"statistics": stats,
		"earnings":   breakdown,
	})
}
