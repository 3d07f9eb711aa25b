package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

type NotificationService service

func (s *NotificationService) List(ctx context.Context, sess *session.Session, nq domain.NotificationQuery) (*domain.NotificationList, error) {
	var out domain.NotificationList
	q := query{}.
		setInt("limit", nq.Limit).
		setInt("offset", nq.Offset).
		setString("notification_type", nq.NotificationType).
		setBool("is_read", nq.IsRead)
	if err := s.client.get(ctx, sess, "/notifications", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, sess *session.Session, id int64) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPatch, pathf("/notifications/%s/read", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllRead is idempotent
func (s *NotificationService) MarkAllRead(ctx context.Context, sess *session.Session) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPatch, "/notifications/mark-all-read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, sess *session.Session, prefs domain.NotificationPreferences) (*domain.PreferencesResponse, error) {
	var out domain.PreferencesResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPatch, "/notifications/preferences", prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
