package domain

// PriceQuery filters /market/prices. Zero values are not sent.
type PriceQuery struct {
	CropName   string
	MarketName string
	State      string
	District   string
	Limit      int
	Offset     int
}

// MarketPrice is one mandi quote, prices per quintal
type MarketPrice struct {
	ID              int64     `json:"id"`
	CropName        string    `json:"crop_name"`
	Variety         *string   `json:"variety,omitempty"`
	MarketName      string    `json:"market_name"`
	State           string    `json:"state"`
	District        string    `json:"district"`
	MinPrice        Price     `json:"min_price"`
	MaxPrice        Price     `json:"max_price"`
	ModalPrice      Price     `json:"modal_price"`
	ArrivalQuantity *float64  `json:"arrival_quantity,omitempty"`
	QualityGrade    *string   `json:"quality_grade,omitempty"`
	Source          *string   `json:"source,omitempty"`
	PriceDate       Timestamp `json:"price_date"`
}

type PriceList struct {
	Prices []MarketPrice `json:"prices"`
	Total  int           `json:"total"`
}

// PricePoint is one day of a crop's price history
type PricePoint struct {
	Date       string `json:"date"`
	MinPrice   Price  `json:"min_price"`
	MaxPrice   Price  `json:"max_price"`
	ModalPrice Price  `json:"modal_price"`
}

type PriceHistory struct {
	CropName     string       `json:"crop_name"`
	Days         int          `json:"days"`
	MarketName   *string      `json:"market_name,omitempty"`
	PriceHistory []PricePoint `json:"price_history"`
}

// InsightQuery filters /market/insights. Zero values are not sent.
type InsightQuery struct {
	CropName    string
	Region      string
	InsightType string
	Limit       int
}

// MarketInsight is an analyst or model generated market note
type MarketInsight struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	InsightType     string    `json:"insight_type"`
	CropName        *string   `json:"crop_name,omitempty"`
	Region          *string   `json:"region,omitempty"`
	TrendDirection  *string   `json:"trend_direction,omitempty"`
	ConfidenceLevel *float64  `json:"confidence_level,omitempty"`
	TimeHorizon     *string   `json:"time_horizon,omitempty"`
	IsAIGenerated   bool      `json:"is_ai_generated"`
	ModelVersion    *string   `json:"model_version,omitempty"`
	Language        string    `json:"language"`
	CreatedAt       Timestamp `json:"created_at"`
}

type InsightList struct {
	Insights []MarketInsight `json:"insights"`
	Total    int             `json:"total"`
}

// AlertType says which side of the target price triggers an alert
type AlertType string

const (
	AlertAbove AlertType = "above"
	AlertBelow AlertType = "below"
)

// PriceAlert asks to be notified when a crop crosses a target price
type PriceAlert struct {
	CropName    string    `json:"crop_name" validate:"required"`
	TargetPrice Price     `json:"target_price"`
	AlertType   AlertType `json:"alert_type" validate:"required,oneof=above below"`
	MarketName  *string   `json:"market_name,omitempty"`
}

type PriceAlertResponse struct {
	Message     string    `json:"message"`
	CropName    string    `json:"crop_name"`
	TargetPrice Price     `json:"target_price"`
	AlertType   AlertType `json:"alert_type"`
	MarketName  *string   `json:"market_name,omitempty"`
}

// PriceAlertList is served by the development backend only
type PriceAlertList struct {
	Alerts []PriceAlert `json:"alerts"`
	Total  int          `json:"total"`
}
