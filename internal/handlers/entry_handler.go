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

type EntryHandler struct {
	Service *services.EntryService
}

func NewEntryHandler(s *services.EntryService) *EntryHandler {
	return &EntryHandler{Service: s}
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, ok := middleware.GetWorkerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Worker ID not found in context")
		return
	}

	entry, err := h.Service.Create(r.Context(), &req, workerID)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	entry, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	entries, err := h.Service.List(r.Context(), workerID, role, r.URL.Query().Get("date"))
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}
	if entries == nil {
		entries = []*models.Entry{}
	}

	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	if err := h.Service.UpdateNote(r.Context(), id, req.Note, workerID, role); err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Note updated"})
}

func (h *EntryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	if err := h.Service.UpdateStatus(r.Context(), id, req.Status, workerID); err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	if err := h.Service.Delete(r.Context(), id, workerID); err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}

func (h *EntryHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	affected, err := h.Service.BulkUpdateStatus(r.Context(), &req, workerID)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"updated": len(affected), "ids": affected})
}

func (h *EntryHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workerID, _ := middleware.GetWorkerIDFromContext(r.Context())

	deleted, err := h.Service.BulkDelete(r.Context(), &req, workerID)
	if err != nil {
		utils.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
