package domain

import (
	"context"
	"errors"
	"time"
)

// Errors returned by the development backend's repositories and services
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidOTP      = errors.New("invalid or expired OTP")
	ErrTooManyAttempts = errors.New("too many OTP attempts")
	ErrTokenRevoked    = errors.New("token revoked")
)

// OTPRecord is a pending login code. Only the bcrypt hash is kept.
type OTPRecord struct {
	PhoneNumber string
	CodeHash    []byte
	ExpiresAt   time.Time
	Attempts    int
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type OTPRepository interface {
	SaveOTP(ctx context.Context, rec *OTPRecord) error
	GetOTP(ctx context.Context, phone string) (*OTPRecord, error)
	DeleteOTP(ctx context.Context, phone string) error
}

// TokenRevocationRepository remembers logged-out tokens until they expire
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AdvisoryRepository interface {
	AddAdvisory(ctx context.Context, userID int64, entry *ChatHistoryEntry) error
	ListAdvisories(ctx context.Context, userID int64, limit, offset int) ([]ChatHistoryEntry, int, error)
}

type CommunityRepository interface {
	ListPosts(ctx context.Context, q PostQuery) ([]CommunityPost, int, error)
	CreatePost(ctx context.Context, author PostAuthor, post NewPost, language string) (int64, error)
	GetPost(ctx context.Context, id int64) (*PostDetail, error)
	LikePost(ctx context.Context, postID, userID int64) (int, error)
	AddComment(ctx context.Context, postID int64, author PostAuthor, content, language string) (int64, error)
}

type NotificationRepository interface {
	AddNotification(ctx context.Context, userID int64, n *Notification) error
	ListNotifications(ctx context.Context, userID int64, q NotificationQuery) ([]Notification, int, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	SavePreferences(ctx context.Context, userID int64, prefs NotificationPreferences) (NotificationPreferences, error)
}

type FarmRepository interface {
	AddSoilTest(ctx context.Context, userID int64, in SoilTestInput) (int64, error)
	ListSoilTests(ctx context.Context, userID int64) ([]SoilTest, error)
	AddPriceAlert(ctx context.Context, userID int64, alert PriceAlert) error
	ListPriceAlerts(ctx context.Context, userID int64) ([]PriceAlert, error)
}

// CatalogRepository serves the read-only reference data
type CatalogRepository interface {
	Crops(ctx context.Context, q CropQuery) ([]Crop, int, error)
	CropDetails(ctx context.Context, id int64) (*CropDetails, error)
	SoilTypes(ctx context.Context) ([]SoilType, error)
	Shops(ctx context.Context, q ShopQuery) ([]Shop, int, error)
	ShopInventory(ctx context.Context, shopID int64, productType string) (*Inventory, error)
	SearchProducts(ctx context.Context, term string) ([]ProductMatch, error)
	MarketPrices(ctx context.Context, q PriceQuery) ([]MarketPrice, int, error)
	MarketInsights(ctx context.Context, q InsightQuery) ([]MarketInsight, error)
}

// AvatarRepository keeps one profile picture per user
type AvatarRepository interface {
	SaveAvatar(ctx context.Context, userID int64, data []byte, contentType string) error
	Avatar(ctx context.Context, userID int64) ([]byte, string, error)
}
