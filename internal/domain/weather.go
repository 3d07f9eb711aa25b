package domain

type WeatherReading struct {
	Temperature   float64  `json:"temperature"`
	Humidity      float64  `json:"humidity"`
	Pressure      float64  `json:"pressure"`
	WindSpeed     float64  `json:"wind_speed"`
	WindDirection float64  `json:"wind_direction"`
	Visibility    float64  `json:"visibility"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Rainfall      *float64 `json:"rainfall,omitempty"`
}

type CurrentWeather struct {
	Location  string         `json:"location"`
	Weather   WeatherReading `json:"weather"`
	Timestamp *Timestamp     `json:"timestamp,omitempty"`
}

// ForecastPoint is one 3-hourly forecast slot
type ForecastPoint struct {
	Datetime    string  `json:"datetime"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Description string  `json:"description"`
}

type ForecastData struct {
	Location string          `json:"location"`
	Forecast []ForecastPoint `json:"forecast"`
}

type WeatherForecast struct {
	Location string       `json:"location"`
	Forecast ForecastData `json:"forecast"`
	Days     int          `json:"days"`
}

type WeatherAlert struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	StartsAt    *Timestamp `json:"starts_at,omitempty"`
	EndsAt      *Timestamp `json:"ends_at,omitempty"`
}

type WeatherAlerts struct {
	Location string         `json:"location"`
	Alerts   []WeatherAlert `json:"alerts"`
}
