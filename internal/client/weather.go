package client

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

type WeatherService service

func (s *WeatherService) Current(ctx context.Context, sess *session.Session, location string) (*domain.CurrentWeather, error) {
	var out domain.CurrentWeather
	q := query{}.setString("location", location)
	if err := s.client.get(ctx, sess, "/weather/current", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DefaultForecastDays is sent when Forecast is called with zero days.
const DefaultForecastDays = 7

// Forecast returns days of 3-hourly slots.
func (s *WeatherService) Forecast(ctx context.Context, sess *session.Session, location string, days int) (*domain.WeatherForecast, error) {
	var out domain.WeatherForecast
	if days <= 0 {
		days = DefaultForecastDays
	}
	q := query{}.setString("location", location).setInt("days", days)
	if err := s.client.get(ctx, sess, "/weather/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *WeatherService) Alerts(ctx context.Context, sess *session.Session, location string) (*domain.WeatherAlerts, error) {
	var out domain.WeatherAlerts
	q := query{}.setString("location", location)
	if err := s.client.get(ctx, sess, "/weather/alerts", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
