package handlers

import (
	"net/http"
	"strconv"

	"weigh-backend/internal/models"
	"weigh-backend/internal/repositories"
	"weigh-backend/pkg/utils"
)

type AuditLogHandler struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditLogHandler(repo *repositories.AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{Repo: repo}
}

// ListLogs returns recent audit rows, newest first. Admin only.
func (h *AuditLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	logs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if logs == nil {
		logs = []*models.AuditLog{}
	}

	utils.JSON(w, http.StatusOK, logs)
}
