package handler

import (
	"net/http"
	"strings"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/service"
)

type WeatherHandler struct {
	weatherService *service.WeatherService
}

func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

func location(w http.ResponseWriter, q *queryParams) (string, bool) {
	loc := strings.TrimSpace(q.String("location"))
	if loc == "" {
		response.Unprocessable(w, "field required", "query", "location")
		return "", false
	}
	return loc, true
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	loc, ok := location(w, query(r))
	if !ok {
		return
	}
	response.OK(w, h.weatherService.Current(loc))
}

func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	loc, ok := location(w, q)
	if !ok {
		return
	}
	days := q.Int("days", 0)
	if !q.ok(w) {
		return
	}
	response.OK(w, h.weatherService.Forecast(loc, days))
}

func (h *WeatherHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	loc, ok := location(w, query(r))
	if !ok {
		return
	}
	response.OK(w, h.weatherService.Alerts(loc))
}
