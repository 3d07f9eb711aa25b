package service

import (
	"context"
	"fmt"

	"github.com/Rrens/crop-advisory/internal/domain"
)

type NotificationService struct {
	notifications domain.NotificationRepository
}

func NewNotificationService(notifications domain.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID int64, q domain.NotificationQuery) (*domain.NotificationList, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	items, total, err := s.notifications.ListNotifications(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return &domain.NotificationList{Notifications: items, Total: total}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) (*domain.MessageResponse, error) {
	if err := s.notifications.MarkRead(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return &domain.MessageResponse{Message: "Notification marked as read"}, nil
}

// MarkAllRead is idempotent; a second call simply changes nothing
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (*domain.MessageResponse, error) {
	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return &domain.MessageResponse{Message: fmt.Sprintf("%d notifications marked as read", n)}, nil
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, userID int64, prefs domain.NotificationPreferences) (*domain.PreferencesResponse, error) {
	saved, err := s.notifications.SavePreferences(ctx, userID, prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return &domain.PreferencesResponse{Message: "Notification preferences updated", Preferences: saved}, nil
}
