package service

import (
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
)

const (
	defaultForecastDays = 7
	maxForecastDays     = 16
	slotsPerDay         = 8
)

// WeatherService produces deterministic synthetic weather per location so
// the development backend works offline.
type WeatherService struct {
	now func() time.Time
}

func NewWeatherService() *WeatherService {
	return &WeatherService{now: time.Now}
}

// seed maps a location to a stable value in [0, 1)
func seed(location string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(location))))
	return float64(h.Sum32()%1000) / 1000
}

func (s *WeatherService) reading(location string, at time.Time) domain.WeatherReading {
	base := seed(location)
	// diurnal cycle peaking mid-afternoon
	hour := float64(at.Hour()) + float64(at.Minute())/60
	diurnal := math.Sin((hour - 9) / 24 * 2 * math.Pi)
	day := float64(at.YearDay())

	temp := 18 + base*14 + 6*diurnal + 2*math.Sin(day/3)
	humidity := clamp(55+base*30-10*diurnal+5*math.Cos(day/4), 10, 100)
	rain := math.Max(0, (humidity-75)/5)

	description := "clear sky"
	switch {
	case rain > 3:
		description = "moderate rain"
	case rain > 0:
		description = "light rain"
	case humidity > 65:
		description = "scattered clouds"
	}

	return domain.WeatherReading{
		Temperature:   round1(temp),
		Humidity:      round1(humidity),
		Pressure:      round1(1008 + base*10),
		WindSpeed:     round1(2 + base*6 + math.Abs(diurnal)*3),
		WindDirection: math.Mod(base*360+day*7, 360),
		Visibility:    round1(10 - rain),
		Description:   description,
		Location:      location,
		Rainfall:      &rain,
	}
}

func (s *WeatherService) Current(location string) *domain.CurrentWeather {
	now := s.now().UTC()
	ts := domain.NewTimestamp(now)
	return &domain.CurrentWeather{
		Location:  location,
		Weather:   s.reading(location, now),
		Timestamp: &ts,
	}
}

// Forecast returns 3-hourly slots for days days. Zero uses the default of 7.
func (s *WeatherService) Forecast(location string, days int) *domain.WeatherForecast {
	if days <= 0 {
		days = defaultForecastDays
	}
	days = min(days, maxForecastDays)

	start := s.now().UTC().Truncate(3 * time.Hour)
	points := make([]domain.ForecastPoint, 0, days*slotsPerDay)
	for i := 0; i < days*slotsPerDay; i++ {
		at := start.Add(time.Duration(i) * 3 * time.Hour)
		r := s.reading(location, at)
		points = append(points, domain.ForecastPoint{
			Datetime:    at.Format("2006-01-02 15:04:05"),
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Rainfall:    round1(*r.Rainfall),
			Description: r.Description,
		})
	}

	return &domain.WeatherForecast{
		Location: location,
		Forecast: domain.ForecastData{Location: location, Forecast: points},
		Days:     days,
	}
}

// Alerts scans the next three days for heavy rain and heat
func (s *WeatherService) Alerts(location string) *domain.WeatherAlerts {
	fc := s.Forecast(location, 3)
	alerts := []domain.WeatherAlert{}

	var rainFrom, heatFrom *time.Time
	for _, p := range fc.Forecast.Forecast {
		at, err := time.Parse("2006-01-02 15:04:05", p.Datetime)
		if err != nil {
			continue
		}
		if p.Rainfall >= 4 && rainFrom == nil {
			rainFrom = &at
		}
		if p.Temperature >= 38 && heatFrom == nil {
			heatFrom = &at
		}
	}

	if rainFrom != nil {
		starts := domain.NewTimestamp(*rainFrom)
		ends := domain.NewTimestamp(rainFrom.Add(12 * time.Hour))
		alerts = append(alerts, domain.WeatherAlert{
			Title:       "Heavy rain expected",
			Description: "Postpone spraying and fertilizer application; clear field drainage.",
			Severity:    "moderate",
			StartsAt:    &starts,
			EndsAt:      &ends,
		})
	}
	if heatFrom != nil {
		starts := domain.NewTimestamp(*heatFrom)
		ends := domain.NewTimestamp(heatFrom.Add(9 * time.Hour))
		alerts = append(alerts, domain.WeatherAlert{
			Title:       "High temperature",
			Description: "Irrigate in the evening and mulch to conserve soil moisture.",
			Severity:    "high",
			StartsAt:    &starts,
			EndsAt:      &ends,
		})
	}

	return &domain.WeatherAlerts{Location: location, Alerts: alerts}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
