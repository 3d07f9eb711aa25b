package client

import (
	"context"
	"net/http"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// MarketService reads mandi prices and manages price alerts
type MarketService service

func (s *MarketService) Prices(ctx context.Context, sess *session.Session, pq domain.PriceQuery) (*domain.PriceList, error) {
	var out domain.PriceList
	q := query{}.
		setString("crop_name", pq.CropName).
		setString("market_name", pq.MarketName).
		setString("state", pq.State).
		setString("district", pq.District).
		setInt("limit", pq.Limit).
		setInt("offset", pq.Offset)
	if err := s.client.get(ctx, sess, "/market/prices", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DefaultHistoryDays is sent when PriceHistory is called with zero days.
const DefaultHistoryDays = 30

// PriceHistory returns daily prices for cropName.
func (s *MarketService) PriceHistory(ctx context.Context, sess *session.Session, cropName string, days int, marketName string) (*domain.PriceHistory, error) {
	var out domain.PriceHistory
	if days <= 0 {
		days = DefaultHistoryDays
	}
	q := query{}.setInt("days", days).setString("market_name", marketName)
	if err := s.client.get(ctx, sess, pathf("/market/price-history/%s", cropName), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MarketService) Insights(ctx context.Context, sess *session.Session, iq domain.InsightQuery) (*domain.InsightList, error) {
	var out domain.InsightList
	q := query{}.
		setString("crop_name", iq.CropName).
		setString("region", iq.Region).
		setString("insight_type", iq.InsightType).
		setInt("limit", iq.Limit)
	if err := s.client.get(ctx, sess, "/market/insights", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MarketService) SetPriceAlert(ctx context.Context, sess *session.Session, alert domain.PriceAlert) (*domain.PriceAlertResponse, error) {
	var out domain.PriceAlertResponse
	if err := s.client.sendJSON(ctx, sess, http.MethodPost, "/market/price-alerts", alert, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
