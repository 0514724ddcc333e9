package handlers

import (
	"net/http"

	"shiftboard/internal/common/logger"
	"shiftboard/internal/service"
)

type Handler struct {
	svc *service.Service
	lg  *logger.Logger
}

func New(svc *service.Service, lg *logger.Logger) *Handler {
	return &Handler{svc: svc, lg: lg}
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)

	mux.HandleFunc("POST /api/users", h.handleCreateUser)
	mux.HandleFunc("GET /api/users", h.handleListUsers)
	mux.HandleFunc("DELETE /api/users/{id}", h.handleDeleteUser)

	mux.HandleFunc("POST /api/menu", h.handleCreateMenuItem)
	mux.HandleFunc("GET /api/menu", h.handleListMenu)
	mux.HandleFunc("DELETE /api/menu/{id}", h.handleDeleteMenuItem)

	mux.HandleFunc("GET /api/shifts", h.handleShiftView)
	mux.HandleFunc("GET /api/shifts/cells", h.handleShiftCells)
	mux.HandleFunc("POST /api/shifts/update", h.handleUpsertShift)

	mux.HandleFunc("POST /api/orders", h.handleAddOrderLine)
	mux.HandleFunc("GET /api/orders", h.handleListOrderLines)
	mux.HandleFunc("DELETE /api/orders/{id}", h.handleDeleteOrderLine)
	mux.HandleFunc("POST /api/orders/finish", h.handleFinishOrders)

	mux.HandleFunc("GET /api/history", h.handleListHistory)
	mux.HandleFunc("DELETE /api/history/{id}", h.handleDeleteHistory)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
