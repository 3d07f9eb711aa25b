package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	q := query(r)
	nq := domain.NotificationQuery{
		Limit:            q.Int("limit", 0),
		Offset:           q.Int("offset", 0),
		NotificationType: q.String("notification_type"),
		IsRead:           q.Bool("is_read"),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.notificationService.List(r.Context(), id, nq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathID(w, r, "notificationID")
	if !ok {
		return
	}

	resp, err := h.notificationService.MarkRead(r.Context(), id, notificationID)
	if err != nil {
		fail(w, r, err, "Notification not found")
		return
	}
	response.OK(w, resp)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	resp, err := h.notificationService.MarkAllRead(r.Context(), id)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *NotificationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var prefs domain.NotificationPreferences
	if !decode(w, r, &prefs) {
		return
	}

	resp, err := h.notificationService.UpdatePreferences(r.Context(), id, prefs)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
