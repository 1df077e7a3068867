package handler

import (
	"log/slog"
	"net/http"

	"queueless/internal/model"
	"queueless/internal/store"
	"queueless/internal/websocket"
)

type NotificationHandler struct {
	notificationStore *store.NotificationStore
	hub               *websocket.Hub
	logger            *slog.Logger
}

func NewNotificationHandler(ns *store.NotificationStore, hub *websocket.Hub, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notificationStore: ns, hub: hub, logger: logger}
}

// List handles GET /api/notifications[?unread=true], newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		notifications []model.Notification
		err           error
	)
	if r.URL.Query().Get("unread") == "true" {
		notifications, err = h.notificationStore.ListUnread()
	} else {
		notifications, err = h.notificationStore.List()
	}
	if err != nil {
		h.logger.Error("list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.notificationStore.GetByID(id)
	if err != nil {
		h.logger.Error("get notification", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get notification")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}

	n, err := h.notificationStore.MarkRead(id)
	if err != nil {
		h.logger.Error("mark notification read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationStore.MarkAllRead()
	if err != nil {
		h.logger.Error("mark all notifications read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": count})
}

// Delete handles DELETE /api/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.notificationStore.GetByID(id)
	if err != nil {
		h.logger.Error("get notification", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get notification")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}

	if err := h.notificationStore.Delete(id); err != nil {
		h.logger.Error("delete notification", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityNotification, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
