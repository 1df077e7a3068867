package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"queueless/internal/email"
	"queueless/internal/model"
	"queueless/internal/store"
)

type ContactHandler struct {
	contactStore *store.ContactStore
	emailClient  *email.Client
	logger       *slog.Logger
}

func NewContactHandler(cs *store.ContactStore, ec *email.Client, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactStore: cs, emailClient: ec, logger: logger}
}

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

// Submit handles POST /api/contact. The message is stored first; the email
// relay is best effort and never fails the request.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	case req.Message == "":
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	msg, err := h.contactStore.Create(req.Name, req.Email, req.Phone, req.BusinessName, req.Subject, req.Message)
	if err != nil {
		h.logger.Error("create contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit message")
		return
	}

	if h.emailClient.Configured() {
		if err := h.emailClient.SendContactMessage(msg); err != nil {
			h.logger.Warn("relay contact message", "id", msg.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, msg)
}

// List handles GET /api/contact-messages, for staff review.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactStore.List()
	if err != nil {
		h.logger.Error("list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}
