package http

import (
	"net/http"
	"strconv"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/history"
)

const (
	defaultOrderLimit = 10
	maxOrderLimit     = 100
)

type OrdersHandler struct {
	log *history.Log
}

func NewOrdersHandler(log *history.Log) *OrdersHandler {
	return &OrdersHandler{log: log}
}

// GET /api/v1/orders?limit=n
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxOrderLimit {
		limit = maxOrderLimit
	}

	entries := h.log.Recent(limit)
	orders := make([]OrderResponseDTO, 0, len(entries))
	for _, entry := range entries {
		orders = append(orders, orderDTO(entry))
	}
	respondJSON(w, http.StatusOK, orders)
}
