package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

// ChatHandler serves the advisory chatbot
type ChatHandler struct {
	advisoryService *service.AdvisoryService
}

func NewChatHandler(advisoryService *service.AdvisoryService) *ChatHandler {
	return &ChatHandler{advisoryService: advisoryService}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.ChatMessage
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.advisoryService.Chat(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ChatHandler) Voice(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.VoiceMessage
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.advisoryService.Voice(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	q := query(r)
	limit := q.Int("limit", 20)
	offset := q.Int("offset", 0)
	if !q.ok(w) {
		return
	}

	resp, err := h.advisoryService.History(r.Context(), id, limit, offset)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
