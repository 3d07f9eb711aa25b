package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

type UserService service

func (s *UserService) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	var out domain.User
	if err := s.client.get(ctx, sess, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies the non-nil fields of update
func (s *UserService) UpdateProfile(ctx context.Context, sess *session.Session, update domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	if err := s.client.sendJSON(ctx, sess, http.MethodPatch, "/users/me", update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, sess *session.Session, img domain.ImageUpload) (*domain.AvatarResponse, error) {
	var out domain.AvatarResponse
	if err := s.client.upload(ctx, sess, "/users/me/avatar", avatarField, nil, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
