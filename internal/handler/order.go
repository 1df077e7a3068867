package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"queueless/internal/model"
	"queueless/internal/order"
	"queueless/internal/store"
	"queueless/internal/websocket"
)

type OrderHandler struct {
	orderStore *store.OrderStore
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewOrderHandler(os *store.OrderStore, hub *websocket.Hub, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orderStore: os, hub: hub, logger: logger}
}

// orderView decorates an order with the actions its current status permits,
// so the dashboard can render buttons without duplicating the lifecycle.
type orderView struct {
	model.Order
	NextActions []model.OrderStatus `json:"nextActions"`
}

func newOrderView(o model.Order) orderView {
	return orderView{Order: o, NextActions: order.NextActions(o.Status)}
}

// List handles GET /api/orders[?status=s], newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		orders []model.Order
		err    error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		s := model.OrderStatus(status)
		if !order.ValidStatus(s) {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		orders, err = h.orderStore.ListByStatus(s)
	} else {
		orders, err = h.orderStore.List()
	}
	if err != nil {
		h.logger.Error("list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	writeJSON(w, http.StatusOK, views)
}

// Get handles GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderStore.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(*o))
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus handles PUT /api/orders/{id}/status. Moves outside the
// lifecycle return 409 and leave the stored status untouched.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !order.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	o, err := h.orderStore.UpdateStatus(id, req.Status)
	if errors.Is(err, order.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("update order status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update order status")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityOrder, "status_changed", o.ID, map[string]any{"status": string(o.Status)}))
	writeJSON(w, http.StatusOK, newOrderView(*o))
}
