package handler

import (
	"net/http"

	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/message"
)

// PostMessageRequest is the body of POST /api/messages.
// Blank text is left to the service so it maps to {"error":"empty"}.
type PostMessageRequest struct {
	Name string `json:"name" validate:"max=50"`
	Text string `json:"text" validate:"max=500"`
}

// MessageHandler serves the message board
type MessageHandler struct {
	messageSvc message.Service
}

// NewMessageHandler creates a new message board handler
func NewMessageHandler(messageSvc message.Service) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// List returns every message, oldest first
// @Summary List messages
// @Tags messages
// @Produce json
// @Success 200 {array} domain.Message
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/messages [get]
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messageSvc.List(r.Context())
	if err != nil {
		respondServiceError(w, r, "list_messages", err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	respondJSON(w, http.StatusOK, msgs)
}

// Post adds a message
// @Summary Post a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body PostMessageRequest true "Message"
// @Success 200 {object} domain.Message
// @Failure 400 {object} ErrorResponse "Empty or oversized text"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/messages [post]
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Post message"); err != nil {
		return
	}

	msg, err := h.messageSvc.Post(r.Context(), req.Name, req.Text)
	if err != nil {
		respondServiceError(w, r, "post_message", err)
		return
	}
	respondJSON(w, http.StatusOK, msg)
}

// Delete removes one message. A missing id still answers ok.
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Param X-Admin-Pw header string false "Admin password"
// @Param pw query string false "Admin password"
// @Success 200 {object} domain.OKResponse
// @Failure 400 {object} ErrorResponse "Bad id"
// @Failure 403 {object} ErrorResponse "Wrong credential"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/messages/{id} [delete]
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	cred := adminCredential(r, GetOptionalQueryParam(r, QueryParamPassword, ""))
	if err := h.messageSvc.Delete(r.Context(), cred, id); err != nil {
		respondServiceError(w, r, "delete_message", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}

// DeleteAll clears the board
// @Summary Delete all messages
// @Tags messages
// @Produce json
// @Param X-Admin-Pw header string false "Admin password"
// @Param pw query string false "Admin password"
// @Success 200 {object} domain.OKResponse
// @Failure 403 {object} ErrorResponse "Wrong credential"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /api/messages [delete]
func (h *MessageHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	cred := adminCredential(r, GetOptionalQueryParam(r, QueryParamPassword, ""))
	if err := h.messageSvc.DeleteAll(r.Context(), cred); err != nil {
		respondServiceError(w, r, "delete_all_messages", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.OKResponse{OK: true})
}
