package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// AuthService covers phone/OTP login and the token lifecycle. Calls that
// mint a token store it in the session on success and clear the session
// on failure. When the token cannot be stored (a nil session, a failing
// store) they return the response together with ErrTokenNotStored.
type AuthService service

func (s *AuthService) SendOTP(ctx context.Context, sess *session.Session, phone string) (*domain.SendOTPResponse, error) {
	var out domain.SendOTPResponse
	err := s.client.sendJSON(ctx, sess, http.MethodPost, "/auth/send-otp",
		domain.SendOTPRequest{PhoneNumber: phone}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, sess *session.Session, in domain.OTPVerification) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := s.client.sendJSON(ctx, sess, http.MethodPost, "/auth/verify-otp", in, &out)
	if err := s.storeToken(ctx, sess, out.AccessToken, err); err != nil {
		if errors.Is(err, ErrTokenNotStored) {
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Register(ctx context.Context, sess *session.Session, in domain.UserRegistration) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := s.client.sendJSON(ctx, sess, http.MethodPost, "/auth/register", in, &out)
	if err := s.storeToken(ctx, sess, out.AccessToken, err); err != nil {
		if errors.Is(err, ErrTokenNotStored) {
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

// CurrentUser returns the profile the session's token belongs to
func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) (*domain.User, error) {
	var out domain.User
	if err := s.client.get(ctx, sess, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges the current token for a fresh one
func (s *AuthService) RefreshToken(ctx context.Context, sess *session.Session) (*domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := s.client.sendJSON(ctx, sess, http.MethodPost, "/auth/refresh-token", nil, &out)
	if err := s.storeToken(ctx, sess, out.AccessToken, err); err != nil {
		if errors.Is(err, ErrTokenNotStored) {
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

// Logout tells the server and then clears the session regardless of the
// server's answer.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	callErr := s.client.sendJSON(ctx, sess, http.MethodPost, "/auth/logout", nil, &out)
	if clearErr := sess.Clear(ctx); clearErr != nil {
		return nil, errors.Join(callErr, clearErr)
	}
	if callErr != nil {
		return nil, callErr
	}
	return &out, nil
}

func (s *AuthService) storeToken(ctx context.Context, sess *session.Session, token string, callErr error) error {
	if callErr == nil && token == "" {
		callErr = errors.New("authentication response carried no access token")
	}
	if callErr != nil {
		if clearErr := sess.Clear(ctx); clearErr != nil {
			return errors.Join(callErr, clearErr)
		}
		return callErr
	}
	if err := sess.SetToken(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", ErrTokenNotStored, err)
	}
	return nil
}
