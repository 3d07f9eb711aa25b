package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

type SoilService service

func (s *SoilService) Types(ctx context.Context, sess *session.Session) (*domain.SoilTypeList, error) {
	var out domain.SoilTypeList
	if err := s.client.get(ctx, sess, "/soil/types", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SoilService) AddTest(ctx context.Context, sess *session.Session, test domain.SoilTestInput) (*domain.AddSoilTestResponse, error) {
	var out domain.AddSoilTestResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/soil/tests", test, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tests lists the caller's soil tests, newest first
func (s *SoilService) Tests(ctx context.Context, sess *session.Session) (*domain.SoilTestList, error) {
	var out domain.SoilTestList
	if err := s.client.get(ctx, sess, "/soil/tests", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
