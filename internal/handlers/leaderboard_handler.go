package handlers

import (
	"net/http"
	"strconv"

	"weigh-backend/internal/middleware"
	"weigh-backend/internal/services"
	"weigh-backend/pkg/utils"
)

const defaultLeaderboardLimit = 20

type LeaderboardHandler struct {
	Service *services.LeaderboardService
}

func NewLeaderboardHandler(s *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{Service: s}
}

// GetLeaderboard returns the ranked board. Query params: window
// (daily|alltime, default alltime), limit (default 20).
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = services.WindowAllTime
	}

	limit := defaultLeaderboardLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	board, err := h.Service.Rank(r.Context(), window, limit, workerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, board)
}
