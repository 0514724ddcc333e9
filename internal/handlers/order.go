package handlers

import (
	"net/http"
	"strings"

	"shiftboard/internal/domain"
)

func (h *Handler) handleAddOrderLine(w http.ResponseWriter, r *http.Request) {
	var req domain.AddOrderLineRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	line, err := h.svc.Orders.AddLine(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *Handler) handleListOrderLines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	category := strings.TrimSpace(q.Get("category"))
	slotRaw := strings.TrimSpace(q.Get("slot"))
	if date == "" || category == "" || slotRaw == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "date, category, and slot are required")
		return
	}
	slot := atoiDefault(slotRaw, -1)

	lines, err := h.svc.Orders.ListLines(r.Context(), date, category, slot)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"sum":   domain.SumLines(lines),
	})
}

func (h *Handler) handleDeleteOrderLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Orders.DeleteLine(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFinishOrders(w http.ResponseWriter, r *http.Request) {
	var req domain.FinishBatchRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	batch, err := h.svc.Orders.Finish(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	batches, err := h.svc.Orders.ListHistory(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

func (h *Handler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	batchID := r.PathValue("id")
	if err := h.svc.Orders.DeleteHistoryEntry(r.Context(), batchID); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
