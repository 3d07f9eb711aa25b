package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// CommunityService reads and writes the farmer forum
type CommunityService service

func (s *CommunityService) Posts(ctx context.Context, sess *session.Session, pq domain.PostQuery) (*domain.PostList, error) {
	var out domain.PostList
	q := query{}.
		setInt("limit", pq.Limit).
		setInt("offset", pq.Offset).
		setString("post_type", pq.PostType).
		setString("crop_category", pq.CropCategory)
	if err := s.client.get(ctx, sess, "/community/posts", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CommunityService) CreatePost(ctx context.Context, sess *session.Session, post domain.NewPost) (*domain.CreatePostResponse, error) {
	var out domain.CreatePostResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/community/posts", post, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Post returns a post with its comments
func (s *CommunityService) Post(ctx context.Context, sess *session.Session, id int64) (*domain.PostDetail, error) {
	var out domain.PostDetail
	if err := s.client.get(ctx, sess, pathf("/community/posts/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CommunityService) Like(ctx context.Context, sess *session.Session, id int64) (*domain.LikeResponse, error) {
	var out domain.LikeResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, pathf("/community/posts/%s/like", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CommunityService) Comment(ctx context.Context, sess *session.Session, id int64, comment domain.NewComment) (*domain.CommentResponse, error) {
	var out domain.CommentResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, pathf("/community/posts/%s/comments", id), comment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
