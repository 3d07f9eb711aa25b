package domain

type SoilType struct {
	ID                      int64    `json:"id"`
	Name                    string   `json:"name"`
	Description             *string  `json:"description,omitempty"`
	PHRangeMin              *float64 `json:"ph_range_min,omitempty"`
	PHRangeMax              *float64 `json:"ph_range_max,omitempty"`
	OrganicMatterPercentage *float64 `json:"organic_matter_percentage,omitempty"`
	WaterRetentionCapacity  *string  `json:"water_retention_capacity,omitempty"`
}

type SoilTypeList struct {
	SoilTypes []SoilType `json:"soil_types"`
}

// SoilTestInput is a lab report to record. Nutrients are kg/ha.
type SoilTestInput struct {
	PHLevel           *float64 `json:"ph_level,omitempty" validate:"omitempty,gte=0,lte=14"`
	NitrogenContent   *float64 `json:"nitrogen_content,omitempty" validate:"omitempty,gte=0"`
	PhosphorusContent *float64 `json:"phosphorus_content,omitempty" validate:"omitempty,gte=0"`
	PotassiumContent  *float64 `json:"potassium_content,omitempty" validate:"omitempty,gte=0"`
	OrganicMatter     *float64 `json:"organic_matter,omitempty" validate:"omitempty,gte=0"`
	SoilType          *string  `json:"soil_type,omitempty"`
	Texture           *string  `json:"texture,omitempty"`
	LabName           *string  `json:"lab_name,omitempty"`
}

type SoilTest struct {
	ID                int64     `json:"id"`
	PHLevel           *float64  `json:"ph_level,omitempty"`
	NitrogenContent   *float64  `json:"nitrogen_content,omitempty"`
	PhosphorusContent *float64  `json:"phosphorus_content,omitempty"`
	PotassiumContent  *float64  `json:"potassium_content,omitempty"`
	OrganicMatter     *float64  `json:"organic_matter,omitempty"`
	SoilType          *string   `json:"soil_type,omitempty"`
	Texture           *string   `json:"texture,omitempty"`
	TestDate          Timestamp `json:"test_date"`
	LabName           *string   `json:"lab_name,omitempty"`
	Recommendations   *string   `json:"recommendations,omitempty"`
}

type SoilTestList struct {
	SoilTests []SoilTest `json:"soil_tests"`
	Total     int        `json:"total"`
}

type AddSoilTestResponse struct {
	Message    string `json:"message"`
	SoilTestID int64  `json:"soil_test_id"`
}
