package handlers

import (
	"net/http"
	"strings"

	"shiftboard/internal/domain"
)

func (h *Handler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	item, err := h.svc.Menu.AddItem(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleListMenu(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category is required")
		return
	}

	items, err := h.svc.Menu.List(r.Context(), category)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Menu.Delete(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
