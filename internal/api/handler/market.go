package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
	"github.com/go-chi/chi/v5"
)

// MarketHandler serves mandi prices, insights and alerts
type MarketHandler struct {
	marketService *service.MarketService
}

func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

func (h *MarketHandler) Prices(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	pq := domain.PriceQuery{
		CropName:   q.String("crop_name"),
		MarketName: q.String("market_name"),
		State:      q.String("state"),
		District:   q.String("district"),
		Limit:      q.Int("limit", 0),
		Offset:     q.Int("offset", 0),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.marketService.Prices(r.Context(), pq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *MarketHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	days := q.Int("days", 0)
	if !q.ok(w) {
		return
	}

	resp, err := h.marketService.PriceHistory(r.Context(), chi.URLParam(r, "cropName"), days, q.String("market_name"))
	if err != nil {
		fail(w, r, err, "No price data found for this crop")
		return
	}
	response.OK(w, resp)
}

func (h *MarketHandler) Insights(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	iq := domain.InsightQuery{
		CropName:    q.String("crop_name"),
		Region:      q.String("region"),
		InsightType: q.String("insight_type"),
		Limit:       q.Int("limit", 0),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.marketService.Insights(r.Context(), iq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *MarketHandler) SetPriceAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.PriceAlert
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.marketService.SetPriceAlert(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *MarketHandler) PriceAlerts(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	resp, err := h.marketService.PriceAlerts(r.Context(), id)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
