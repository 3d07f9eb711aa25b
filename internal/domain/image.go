package domain

import "io"

// ImageUpload is a photo to send to one of the image analysis endpoints.
// Content is read once; Filename is reported to the server as-is.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type DiseaseResult struct {
	DiseaseName     string  `json:"disease_name"`
	Confidence      float64 `json:"confidence"`
	Description     string  `json:"description"`
	TreatmentAdvice string  `json:"treatment_advice"`
	PreventionTips  string  `json:"prevention_tips"`
	Severity        string  `json:"severity"`
	CropType        *string `json:"crop_type,omitempty"`
}

type PestResult struct {
	PestName        string  `json:"pest_name"`
	Confidence      float64 `json:"confidence"`
	Description     string  `json:"description"`
	ControlMeasures string  `json:"control_measures"`
	PreventionTips  string  `json:"prevention_tips"`
	DamageSymptoms  string  `json:"damage_symptoms"`
	CropType        *string `json:"crop_type,omitempty"`
}

type CropResult struct {
	CropName     string  `json:"crop_name"`
	Confidence   float64 `json:"confidence"`
	Description  string  `json:"description"`
	GrowthStage  string  `json:"growth_stage"`
	HealthStatus string  `json:"health_status"`
}

type PlantHealthResult struct {
	OverallHealthScore float64  `json:"overall_health_score"`
	HealthStatus       string   `json:"health_status"`
	IssuesDetected     []string `json:"issues_detected"`
	HealthSummary      string   `json:"health_summary"`
	Recommendations    string   `json:"recommendations"`
	Confidence         float64  `json:"confidence"`
	CropType           *string  `json:"crop_type,omitempty"`
}
