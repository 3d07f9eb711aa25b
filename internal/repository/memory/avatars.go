package memory

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
)

type avatar struct {
	data        []byte
	contentType string
}

func (s *Store) SaveAvatar(_ context.Context, userID int64, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	s.avatars[userID] = avatar{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *Store) Avatar(_ context.Context, userID int64) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.avatars[userID]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return append([]byte(nil), a.data...), a.contentType, nil
}
