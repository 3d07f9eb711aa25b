package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// ChatService talks to the advisory chatbot
type ChatService service

func (s *ChatService) Send(ctx context.Context, sess *session.Session, msg domain.ChatMessage) (*domain.ChatResponse, error) {
	var out domain.ChatResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/chatbot/chat", msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ChatService) SendVoice(ctx context.Context, sess *session.Session, msg domain.VoiceMessage) (*domain.ChatResponse, error) {
	var out domain.ChatResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/chatbot/voice-chat", msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns earlier advisories, newest first. Zero limit and offset
// leave paging to the server.
func (s *ChatService) History(ctx context.Context, sess *session.Session, limit, offset int) ([]domain.ChatHistoryEntry, error) {
	var out domain.ChatHistory
	q := query{}.setInt("limit", limit).setInt("offset", offset)
	if err := s.client.get(ctx, sess, "/chatbot/chat-history", q, &out); err != nil {
		return nil, err
	}
	return out.Advisories, nil
}
