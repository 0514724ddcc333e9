package handlers

import (
	"net/http"
	"strings"

	"shiftboard/internal/domain"
)

func (h *Handler) handleShiftView(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if category == "" || date == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category and date are required")
		return
	}

	view, err := h.svc.Board.BuildShiftView(r.Context(), domain.Category(category), date)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleShiftCells returns the day's stored (non-empty) cells without
// the directory join; absent cells mean empty.
func (h *Handler) handleShiftCells(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if category == "" || date == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category and date are required")
		return
	}

	cells, err := h.svc.Shifts.GetShiftsForDate(r.Context(), domain.Category(category), date)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (h *Handler) handleUpsertShift(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertShiftRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	cell, err := h.svc.Shifts.Upsert(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}
