package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

type CropService service

func (s *CropService) List(ctx context.Context, sess *session.Session, cq domain.CropQuery) (*domain.CropList, error) {
	var out domain.CropList
	q := query{}.
		setInt("limit", cq.Limit).
		setInt("offset", cq.Offset).
		setString("search", cq.Search)
	if err := s.client.get(ctx, sess, "/crops", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CropService) Recommendations(ctx context.Context, sess *session.Session, req domain.RecommendationRequest) (*domain.Recommendations, error) {
	var out domain.Recommendations
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/crops/recommendations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CropService) Details(ctx context.Context, sess *session.Session, id int64) (*domain.CropDetails, error) {
	var out domain.CropDetails
	if err := s.client.get(ctx, sess, pathf("/crops/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
