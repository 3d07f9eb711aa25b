package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

// OTPSender delivers a login code to a phone
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending an SMS
type LogSender struct{}

func (LogSender) SendOTP(_ context.Context, phone, code string) error {
	log.Info().Str("phone", phone).Str("otp", code).Msg("OTP issued")
	return nil
}

// AuthService handles the phone/OTP login flow and token lifecycle
type AuthService struct {
	users         domain.UserRepository
	otps          domain.OTPRepository
	revocations   domain.TokenRevocationRepository
	notifications domain.NotificationRepository
	jwtManager    *security.JWTManager
	sender        OTPSender
	cfg           config.OTPConfig
	now           func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserRepository,
	otps domain.OTPRepository,
	revocations domain.TokenRevocationRepository,
	notifications domain.NotificationRepository,
	jwtManager *security.JWTManager,
	sender OTPSender,
	cfg config.OTPConfig,
) *AuthService {
	return &AuthService{
		users:         users,
		otps:          otps,
		revocations:   revocations,
		notifications: notifications,
		jwtManager:    jwtManager,
		sender:        sender,
		cfg:           cfg,
		now:           time.Now,
	}
}

// SendOTP issues a fresh code for phone, replacing any pending one
func (s *AuthService) SendOTP(ctx context.Context, phone string) (*domain.SendOTPResponse, error) {
	phone, err := security.NormalizePhoneNumber(phone)
	if err != nil {
		return nil, err
	}

	exists := true
	if _, err := s.users.GetByPhone(ctx, phone); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		exists = false
	}

	code := s.cfg.Static
	if code == "" {
		if code, err = generateOTP(); err != nil {
			return nil, fmt.Errorf("failed to generate OTP: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash OTP: %w", err)
	}

	rec := &domain.OTPRecord{
		PhoneNumber: phone,
		CodeHash:    hash,
		ExpiresAt:   s.now().Add(s.cfg.TTL),
	}
	if err := s.otps.SaveOTP(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save OTP: %w", err)
	}

	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return &domain.SendOTPResponse{
		Message:     "OTP sent successfully",
		PhoneNumber: phone,
		UserExists:  exists,
	}, nil
}

// VerifyOTP checks the code and logs the user in, creating a minimal
// profile for unknown numbers.
func (s *AuthService) VerifyOTP(ctx context.Context, in domain.OTPVerification) (*domain.LoginResponse, error) {
	phone, err := security.NormalizePhoneNumber(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if err := s.checkOTP(ctx, phone, in.OTP); err != nil {
		return nil, err
	}

	user, err := s.users.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			PhoneNumber:       phone,
			Name:              valueOr(in.Name, "User"),
			State:             valueOr(in.State, ""),
			District:          valueOr(in.District, ""),
			PreferredLanguage: valueOr(in.Language, "hi"),
			IsVerified:        true,
		}
		if err := s.createUser(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.login(user)
}

func (s *AuthService) checkOTP(ctx context.Context, phone, code string) error {
	rec, err := s.otps.GetOTP(ctx, phone)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: OTP not found, please request a new OTP", domain.ErrInvalidOTP)
	}
	if err != nil {
		return fmt.Errorf("failed to get OTP: %w", err)
	}

	if !s.now().Before(rec.ExpiresAt) {
		_ = s.otps.DeleteOTP(ctx, phone)
		return fmt.Errorf("%w: OTP expired, please request a new OTP", domain.ErrInvalidOTP)
	}
	if rec.Attempts >= s.cfg.MaxAttempts {
		return fmt.Errorf("%w: please request a new OTP", domain.ErrTooManyAttempts)
	}

	if err := bcrypt.CompareHashAndPassword(rec.CodeHash, []byte(code)); err != nil {
		rec.Attempts++
		if err := s.otps.SaveOTP(ctx, rec); err != nil {
			return fmt.Errorf("failed to save OTP: %w", err)
		}
		return fmt.Errorf("%w: invalid OTP", domain.ErrInvalidOTP)
	}

	if err := s.otps.DeleteOTP(ctx, phone); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}

// Register creates a full profile without an OTP round trip
func (s *AuthService) Register(ctx context.Context, in domain.UserRegistration) (*domain.LoginResponse, error) {
	phone, err := security.NormalizePhoneNumber(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		PhoneNumber:       phone,
		Name:              in.Name,
		Email:             in.Email,
		State:             in.State,
		District:          in.District,
		Village:           in.Village,
		Pincode:           in.Pincode,
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		FarmSize:          in.FarmSize,
		PrimaryCrops:      in.PrimaryCrops,
		FarmingExperience: in.FarmingExperience,
		PreferredLanguage: in.PreferredLanguage,
		IsVerified:        true,
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = "hi"
	}
	if err := s.createUser(ctx, user); err != nil {
		return nil, err
	}

	return s.login(user)
}

func (s *AuthService) createUser(ctx context.Context, user *domain.User) error {
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("user with this phone number: %w", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	welcome := &domain.Notification{
		Title:            "Welcome to Crop Advisory",
		Message:          "Ask the advisor about irrigation, pests, fertilizer or weather at any time.",
		NotificationType: "system",
		Priority:         "low",
		DeliveryMethod:   "app",
		DeliveryStatus:   "delivered",
		Language:         user.PreferredLanguage,
	}
	if err := s.notifications.AddNotification(ctx, user.ID, welcome); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to add welcome notification")
	}
	return nil
}

func (s *AuthService) login(user *domain.User) (*domain.LoginResponse, error) {
	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.LoginResponse{
		AccessToken: token,
		TokenType:   tokenType,
		User:        *user,
	}, nil
}

// Refresh issues a new token for an already authenticated user
func (s *AuthService) Refresh(ctx context.Context, userID int64) (*domain.TokenResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.TokenResponse{AccessToken: token, TokenType: tokenType}, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *security.Claims) (*domain.MessageResponse, error) {
	until := s.now().Add(s.jwtManager.AccessTokenTTL())
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revocations.Revoke(ctx, claims.ID, until); err != nil {
		return nil, fmt.Errorf("failed to revoke token: %w", err)
	}
	return &domain.MessageResponse{Message: "Logged out successfully"}, nil
}

// Authenticate validates a bearer token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, token string) (*security.Claims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func valueOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
