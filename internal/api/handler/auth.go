package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/middleware"
	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SendOTP starts a phone login
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var input domain.SendOTPRequest
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.authService.SendOTP(r.Context(), input.PhoneNumber)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// VerifyOTP exchanges a code for an access token
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input domain.OTPVerification
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.authService.VerifyOTP(r.Context(), input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserRegistration
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			response.BadRequest(w, "User already exists with this phone number")
			return
		}
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// Refresh issues a fresh token for the authenticated user
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	resp, err := h.authService.Refresh(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Unauthorized(w, "User not found")
			return
		}
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// Logout revokes the presented token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	resp, err := h.authService.Logout(r.Context(), claims)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
