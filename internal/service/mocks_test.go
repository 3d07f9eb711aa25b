package service

import (
	"context"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockOTPRepository mocks the OTPRepository interface
type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) SaveOTP(ctx context.Context, rec *domain.OTPRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockOTPRepository) GetOTP(ctx context.Context, phone string) (*domain.OTPRecord, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPRecord), args.Error(1)
}

func (m *MockOTPRepository) DeleteOTP(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

// MockRevocationRepository mocks the TokenRevocationRepository interface
type MockRevocationRepository struct {
	mock.Mock
}

func (m *MockRevocationRepository) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	args := m.Called(ctx, tokenID, until)
	return args.Error(0)
}

func (m *MockRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) AddNotification(ctx context.Context, userID int64, n *domain.Notification) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, userID int64, q domain.NotificationQuery) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, q)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) SavePreferences(ctx context.Context, userID int64, prefs domain.NotificationPreferences) (domain.NotificationPreferences, error) {
	args := m.Called(ctx, userID, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.NotificationPreferences), args.Error(1)
}

// MockOTPSender records delivered codes
type MockOTPSender struct {
	mock.Mock
}

func (m *MockOTPSender) SendOTP(ctx context.Context, phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}
