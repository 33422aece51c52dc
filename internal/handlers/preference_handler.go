package handlers

import (
	"encoding/json"
	"net/http"

	"weigh-backend/internal/middleware"
	"weigh-backend/internal/repositories"
	"weigh-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// PreferenceHandler exposes per-worker key/value preferences. The client
// persists its location permission state here so a denial is remembered
// across sessions and devices.
type PreferenceHandler struct {
	Repo *repositories.SettingRepository
}

func NewPreferenceHandler(repo *repositories.SettingRepository) *PreferenceHandler {
	return &PreferenceHandler{Repo: repo}
}

func (h *PreferenceHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.GetWorkerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Worker ID not found in context")
		return
	}

	key := mux.Vars(r)["key"]
	value, err := h.Repo.GetPreference(r.Context(), workerID, key)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

func (h *PreferenceHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.GetWorkerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Worker ID not found in context")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	key := mux.Vars(r)["key"]
	if err := h.Repo.SetPreference(r.Context(), workerID, key, req.Value); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}
