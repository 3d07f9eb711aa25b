package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultHistoryDays = 30

// ErrInvalidTargetPrice is returned for non-positive alert targets
var ErrInvalidTargetPrice = errors.New("target price must be greater than zero")

// MarketService serves mandi prices and manages price alerts
type MarketService struct {
	catalog       domain.CatalogRepository
	farm          domain.FarmRepository
	notifications domain.NotificationRepository
	now           func() time.Time
}

func NewMarketService(catalog domain.CatalogRepository, farm domain.FarmRepository, notifications domain.NotificationRepository) *MarketService {
	return &MarketService{
		catalog:       catalog,
		farm:          farm,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *MarketService) Prices(ctx context.Context, q domain.PriceQuery) (*domain.PriceList, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	prices, total, err := s.catalog.MarketPrices(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return &domain.PriceList{Prices: prices, Total: total}, nil
}

// PriceHistory walks today's quotes back over days days with a small
// deterministic drift. Returns domain.ErrNotFound for unknown crops.
func (s *MarketService) PriceHistory(ctx context.Context, cropName string, days int, marketName string) (*domain.PriceHistory, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	days = min(days, 365)

	quotes, _, err := s.catalog.MarketPrices(ctx, domain.PriceQuery{CropName: cropName, MarketName: marketName})
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("prices for %q: %w", cropName, domain.ErrNotFound)
	}

	base := averageQuote(quotes)
	today := s.now().UTC().Truncate(24 * time.Hour)
	points := make([]domain.PricePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		// +/-4% drift, flat at i == 0 so the last point matches today's quote
		drift := decimal.NewFromFloat(1 + 0.04*math.Sin(float64(i)/5)*float64(min(i, 1)))
		points = append(points, domain.PricePoint{
			Date:       day.Format("2006-01-02"),
			MinPrice:   scale(base.MinPrice, drift),
			MaxPrice:   scale(base.MaxPrice, drift),
			ModalPrice: scale(base.ModalPrice, drift),
		})
	}

	out := &domain.PriceHistory{
		CropName:     quotes[0].CropName,
		Days:         days,
		PriceHistory: points,
	}
	if marketName != "" {
		out.MarketName = &marketName
	}
	return out, nil
}

func averageQuote(quotes []domain.MarketPrice) domain.MarketPrice {
	var minP, maxP, modal decimal.Decimal
	for _, q := range quotes {
		minP = minP.Add(q.MinPrice.Decimal)
		maxP = maxP.Add(q.MaxPrice.Decimal)
		modal = modal.Add(q.ModalPrice.Decimal)
	}
	n := decimal.NewFromInt(int64(len(quotes)))
	return domain.MarketPrice{
		MinPrice:   domain.Price{Decimal: minP.Div(n)},
		MaxPrice:   domain.Price{Decimal: maxP.Div(n)},
		ModalPrice: domain.Price{Decimal: modal.Div(n)},
	}
}

func scale(p domain.Price, factor decimal.Decimal) domain.Price {
	return domain.Price{Decimal: p.Mul(factor).Round(2)}
}

func (s *MarketService) Insights(ctx context.Context, q domain.InsightQuery) (*domain.InsightList, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	insights, err := s.catalog.MarketInsights(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return &domain.InsightList{Insights: insights, Total: len(insights)}, nil
}

// SetPriceAlert records the alert and confirms it with a notification
func (s *MarketService) SetPriceAlert(ctx context.Context, userID int64, alert domain.PriceAlert) (*domain.PriceAlertResponse, error) {
	if !alert.TargetPrice.IsPositive() {
		return nil, ErrInvalidTargetPrice
	}
	if err := s.farm.AddPriceAlert(ctx, userID, alert); err != nil {
		return nil, fmt.Errorf("failed to save price alert: %w", err)
	}

	n := &domain.Notification{
		Title:            fmt.Sprintf("Price alert set for %s", alert.CropName),
		Message:          fmt.Sprintf("You will be notified when %s goes %s ₹%s per quintal.", alert.CropName, alert.AlertType, alert.TargetPrice.StringFixed(2)),
		NotificationType: "price_alert",
		CropName:         &alert.CropName,
		Priority:         "medium",
		DeliveryMethod:   "app",
		DeliveryStatus:   "delivered",
		Language:         "en",
	}
	if err := s.notifications.AddNotification(ctx, userID, n); err != nil {
		return nil, fmt.Errorf("failed to add notification: %w", err)
	}

	return &domain.PriceAlertResponse{
		Message:     "Price alert set successfully",
		CropName:    alert.CropName,
		TargetPrice: alert.TargetPrice,
		AlertType:   alert.AlertType,
		MarketName:  alert.MarketName,
	}, nil
}

// PriceAlerts lists the alerts a user has set
func (s *MarketService) PriceAlerts(ctx context.Context, userID int64) (*domain.PriceAlertList, error) {
	alerts, err := s.farm.ListPriceAlerts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list price alerts: %w", err)
	}
	if alerts == nil {
		alerts = []domain.PriceAlert{}
	}
	return &domain.PriceAlertList{Alerts: alerts, Total: len(alerts)}, nil
}
