package domain

// CropQuery filters /crops. Zero values are not sent.
type CropQuery struct {
	Limit  int
	Offset int
	Search string
}

type Crop struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ScientificName   *string `json:"scientific_name,omitempty"`
	LocalNameHindi   *string `json:"local_name_hindi,omitempty"`
	LocalNamePunjabi *string `json:"local_name_punjabi,omitempty"`
	CropType         string  `json:"crop_type"`
	Season           string  `json:"season"`
	DurationDays     *int    `json:"duration_days,omitempty"`
}

type CropList struct {
	Crops []Crop `json:"crops"`
	Total int    `json:"total"`
}

// CropDetails adds agronomic requirements to Crop
type CropDetails struct {
	Crop
	MinTemperature         *float64 `json:"min_temperature,omitempty"`
	MaxTemperature         *float64 `json:"max_temperature,omitempty"`
	OptimalRainfall        *float64 `json:"optimal_rainfall,omitempty"`
	AverageYieldPerAcre    *float64 `json:"average_yield_per_acre,omitempty"`
	WaterRequirements      *string  `json:"water_requirements,omitempty"`
	FertilizerRequirements *string  `json:"fertilizer_requirements,omitempty"`
	CommonPests            *string  `json:"common_pests,omitempty"`
	CommonDiseases         *string  `json:"common_diseases,omitempty"`
}

// RecommendationRequest describes the field a recommendation is for
type RecommendationRequest struct {
	Location string  `json:"location" validate:"required"`
	Season   string  `json:"season" validate:"required,oneof=kharif rabi zaid"`
	SoilType string  `json:"soil_type" validate:"required"`
	FarmSize float64 `json:"farm_size" validate:"gt=0"`
}

// PriceRange is a per-quintal min/max estimate
type PriceRange struct {
	Min Price `json:"min"`
	Max Price `json:"max"`
}

type CropRecommendation struct {
	CropID           int64      `json:"crop_id"`
	CropName         string     `json:"crop_name"`
	ScientificName   *string    `json:"scientific_name,omitempty"`
	LocalNameHindi   *string    `json:"local_name_hindi,omitempty"`
	SuitabilityScore float64    `json:"suitability_score"`
	Season           string     `json:"season"`
	ExpectedYield    float64    `json:"expected_yield"`
	MarketPrice      PriceRange `json:"market_price"`
	Reason           string     `json:"reason"`
}

type Recommendations struct {
	Recommendations []CropRecommendation `json:"recommendations"`
	Location        string               `json:"location"`
	Season          string               `json:"season"`
	SoilType        string               `json:"soil_type"`
	FarmSize        float64              `json:"farm_size"`
}
