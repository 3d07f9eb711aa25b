package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

// UserHandler serves the authenticated profile
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the current authenticated user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Unauthorized(w, "User not found")
			return
		}
		fail(w, r, err, "")
		return
	}
	response.OK(w, user)
}

// Update applies a partial profile update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.UserUpdate
	if !decode(w, r, &input) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.OK(w, user)
}

// UploadAvatar stores the "file" form field as the profile picture
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	data, contentType, ok := readImage(w, r, "file")
	if !ok {
		return
	}

	resp, err := h.userService.SetAvatar(r.Context(), id, data, contentType)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.OK(w, resp)
}

// Avatar serves a stored profile picture. It is public so that avatar_url
// works in an <img> tag.
func (h *UserHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	data, contentType, err := h.userService.Avatar(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Avatar not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
