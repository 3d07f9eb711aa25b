package client

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// ImageService uploads field photos for analysis. The optional crop type
// travels as a query parameter, never as a form field.
type ImageService service

func (s *ImageService) ClassifyDisease(ctx context.Context, sess *session.Session, img domain.ImageUpload, cropType string) (*domain.DiseaseResult, error) {
	var out domain.DiseaseResult
	q := query{}.setString("crop_type", cropType)
	if err := s.client.upload(ctx, sess, "/image/classify-crop-disease", imageField, q, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ImageService) ClassifyPest(ctx context.Context, sess *session.Session, img domain.ImageUpload, cropType string) (*domain.PestResult, error) {
	var out domain.PestResult
	q := query{}.setString("crop_type", cropType)
	if err := s.client.upload(ctx, sess, "/image/classify-pest", imageField, q, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ImageService) ClassifyCrop(ctx context.Context, sess *session.Session, img domain.ImageUpload) (*domain.CropResult, error) {
	var out domain.CropResult
	if err := s.client.upload(ctx, sess, "/image/classify-crop", imageField, nil, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ImageService) AnalyzePlantHealth(ctx context.Context, sess *session.Session, img domain.ImageUpload, cropType string) (*domain.PlantHealthResult, error) {
	var out domain.PlantHealthResult
	q := query{}.setString("crop_type", cropType)
	if err := s.client.upload(ctx, sess, "/image/analyze-plant-health", imageField, q, img, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
