package service

import (
	"context"
	"fmt"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// UserService manages the farmer's own profile
type UserService struct {
	users         domain.UserRepository
	avatars       domain.AvatarRepository
	notifications domain.NotificationRepository
}

func NewUserService(users domain.UserRepository, avatars domain.AvatarRepository, notifications domain.NotificationRepository) *UserService {
	return &UserService{users: users, avatars: avatars, notifications: notifications}
}

func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Update applies the non-nil fields of in. Notification preferences in the
// same body are merged into the stored preferences.
func (s *UserService) Update(ctx context.Context, userID int64, in domain.UserUpdate) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	setString(&user.Name, in.Name)
	setString(&user.State, in.State)
	setString(&user.District, in.District)
	setString(&user.PreferredLanguage, in.PreferredLanguage)
	setPtr(&user.Email, in.Email)
	setPtr(&user.Village, in.Village)
	setPtr(&user.Pincode, in.Pincode)
	setPtr(&user.Latitude, in.Latitude)
	setPtr(&user.Longitude, in.Longitude)
	setPtr(&user.FarmSize, in.FarmSize)
	setPtr(&user.PrimaryCrops, in.PrimaryCrops)
	setPtr(&user.FarmingExperience, in.FarmingExperience)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if len(in.NotificationPreferences) > 0 {
		if _, err := s.notifications.SavePreferences(ctx, userID, in.NotificationPreferences); err != nil {
			return nil, fmt.Errorf("failed to save preferences: %w", err)
		}
	}
	return user, nil
}

// SetAvatar stores the picture and returns the URL it is served from
func (s *UserService) SetAvatar(ctx context.Context, userID int64, data []byte, contentType string) (*domain.AvatarResponse, error) {
	if err := s.avatars.SaveAvatar(ctx, userID, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}
	return &domain.AvatarResponse{
		Message:   "Avatar uploaded successfully",
		AvatarURL: AvatarURL(userID),
	}, nil
}

func (s *UserService) Avatar(ctx context.Context, userID int64) ([]byte, string, error) {
	return s.avatars.Avatar(ctx, userID)
}

// AvatarURL is the public path of a user's avatar
func AvatarURL(userID int64) string {
	return fmt.Sprintf("/static/avatars/%d", userID)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
