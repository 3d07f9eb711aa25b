package domain

// ShopQuery filters /shops. Zero values are not sent.
type ShopQuery struct {
	ShopType             string
	State                string
	District             string
	IsGovernmentApproved *bool
	Limit                int
	Offset               int
}

type Shop struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	ShopType             string   `json:"shop_type"`
	PhoneNumber          *string  `json:"phone_number,omitempty"`
	Email                *string  `json:"email,omitempty"`
	ContactPerson        *string  `json:"contact_person,omitempty"`
	Address              string   `json:"address"`
	State                string   `json:"state"`
	District             string   `json:"district"`
	Village              *string  `json:"village,omitempty"`
	Pincode              *string  `json:"pincode,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	LicenseNumber        *string  `json:"license_number,omitempty"`
	IsVerified           bool     `json:"is_verified"`
	IsGovernmentApproved bool     `json:"is_government_approved"`
	Services             *string  `json:"services,omitempty"`
	PaymentMethods       *string  `json:"payment_methods,omitempty"`
	OperatingHours       *string  `json:"operating_hours,omitempty"`
	AverageRating        *float64 `json:"average_rating,omitempty"`
	TotalReviews         int      `json:"total_reviews"`
}

type ShopList struct {
	Shops []Shop `json:"shops"`
	Total int    `json:"total"`
}

type InventoryItem struct {
	ID                     int64      `json:"id"`
	ProductName            string     `json:"product_name"`
	ProductType            string     `json:"product_type"`
	Brand                  *string    `json:"brand,omitempty"`
	Variety                *string    `json:"variety,omitempty"`
	Description            *string    `json:"description,omitempty"`
	Specifications         *string    `json:"specifications,omitempty"`
	PricePerUnit           Price      `json:"price_per_unit"`
	Unit                   string     `json:"unit"`
	DiscountPercentage     *float64   `json:"discount_percentage,omitempty"`
	CurrentStock           *float64   `json:"current_stock,omitempty"`
	MinimumStock           *float64   `json:"minimum_stock,omitempty"`
	IsAvailable            bool       `json:"is_available"`
	IsOrganic              bool       `json:"is_organic"`
	IsGovernmentSubsidized bool       `json:"is_government_subsidized"`
	QualityGrade           *string    `json:"quality_grade,omitempty"`
	ExpiryDate             *Timestamp `json:"expiry_date,omitempty"`
}

type Inventory struct {
	ShopID    int64           `json:"shop_id"`
	ShopName  string          `json:"shop_name"`
	Inventory []InventoryItem `json:"inventory"`
	Total     int             `json:"total"`
}

// ShopSummary is the shop slice embedded in product search results
type ShopSummary struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	ShopType             string  `json:"shop_type"`
	Address              string  `json:"address"`
	State                string  `json:"state"`
	District             string  `json:"district"`
	PhoneNumber          *string `json:"phone_number,omitempty"`
	IsGovernmentApproved bool    `json:"is_government_approved"`
}

type ProductMatch struct {
	ID                     int64       `json:"id"`
	ProductName            string      `json:"product_name"`
	ProductType            string      `json:"product_type"`
	Brand                  *string     `json:"brand,omitempty"`
	Variety                *string     `json:"variety,omitempty"`
	PricePerUnit           Price       `json:"price_per_unit"`
	Unit                   string      `json:"unit"`
	DiscountPercentage     *float64    `json:"discount_percentage,omitempty"`
	IsOrganic              bool        `json:"is_organic"`
	IsGovernmentSubsidized bool        `json:"is_government_subsidized"`
	Shop                   ShopSummary `json:"shop"`
}

type ProductSearch struct {
	Products []ProductMatch `json:"products"`
	Query    string         `json:"query"`
	Total    int            `json:"total"`
}
