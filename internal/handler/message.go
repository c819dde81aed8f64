package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

// MessageHandler accepts contact-form submissions from site visitors. It is
// the only public write endpoint; reading and deleting messages happens in
// the admin area through the content routes.
type MessageHandler struct {
	store *store.Store
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(st *store.Store) *MessageHandler {
	return &MessageHandler{store: st}
}

// messageRequest is the contact-form payload.
type messageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit stores a contact-form message.
// POST /api/v1/messages
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Email and message are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	doc, err := h.store.CreateDocument(r.Context(), model.CollectionMessages, map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"email":       req.Email,
		"subject":     strings.TrimSpace(req.Subject),
		"message":     req.Message,
		"received_at": time.Now().UTC().Format(time.RFC3339),
		"read":        false,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store message")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      doc.ID,
	})
}
