package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

// CommunityHandler serves the farmer forum
type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	pq := domain.PostQuery{
		Limit:        q.Int("limit", 0),
		Offset:       q.Int("offset", 0),
		PostType:     q.String("post_type"),
		CropCategory: q.String("crop_category"),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.communityService.Posts(r.Context(), pq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.NewPost
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.communityService.CreatePost(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.OK(w, resp)
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	resp, err := h.communityService.Post(r.Context(), postID)
	if err != nil {
		fail(w, r, err, "Post not found")
		return
	}
	response.OK(w, resp)
}

func (h *CommunityHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	resp, err := h.communityService.Like(r.Context(), id, postID)
	if err != nil {
		fail(w, r, err, "Post not found")
		return
	}
	response.OK(w, resp)
}

func (h *CommunityHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	var input domain.NewComment
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.communityService.Comment(r.Context(), id, postID, input)
	if err != nil {
		fail(w, r, err, "Post not found")
		return
	}
	response.OK(w, resp)
}
