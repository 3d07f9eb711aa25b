package memory

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
)

func (s *Store) AddNotification(_ context.Context, userID int64, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.id()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.timestamp()
	}
	stored := *n
	s.notifications[userID] = append(s.notifications[userID], &stored)
	return nil
}

// ListNotifications returns newest first
func (s *Store) ListNotifications(_ context.Context, userID int64, q domain.NotificationQuery) ([]domain.Notification, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.notifications[userID]
	out := make([]domain.Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		n := all[i]
		if q.NotificationType != "" && n.NotificationType != q.NotificationType {
			continue
		}
		if q.IsRead != nil && n.IsRead != *q.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return page(out, q.Limit, q.Offset), len(out), nil
}

func (s *Store) MarkRead(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications[userID] {
		if n.ID == id {
			if !n.IsRead {
				ts := s.timestamp()
				n.IsRead = true
				n.ReadAt = &ts
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// MarkAllRead returns how many notifications changed state
func (s *Store) MarkAllRead(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	ts := s.timestamp()
	for _, n := range s.notifications[userID] {
		if !n.IsRead {
			n.IsRead = true
			n.ReadAt = &ts
			changed++
		}
	}
	return changed, nil
}

// SavePreferences merges prefs into the stored set and returns the result
func (s *Store) SavePreferences(_ context.Context, userID int64, prefs domain.NotificationPreferences) (domain.NotificationPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(domain.NotificationPreferences)
	for k, v := range s.prefs[userID] {
		merged[k] = v
	}
	for k, v := range prefs {
		merged[k] = v
	}
	s.prefs[userID] = merged

	out := make(domain.NotificationPreferences, len(merged))
	for k, v := range merged {
		out[k] = v
	}
	return out, nil
}
