package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/shopspring/decimal"
)

type suitability struct {
	soils         []string
	tempMin       float64
	tempMax       float64
	season        string
	water         string
	fallbackPrice [2]int64
}

// suitabilities is keyed by lower-case crop name
var suitabilities = map[string]suitability{
	"rice":     {[]string{"clay", "clay_loam", "alluvial"}, 20, 35, "kharif", "high", [2]int64{2000, 3000}},
	"wheat":    {[]string{"loam", "clay_loam", "alluvial"}, 15, 25, "rabi", "medium", [2]int64{1800, 2500}},
	"maize":    {[]string{"loam", "sandy_loam", "alluvial", "red"}, 18, 30, "kharif", "medium", [2]int64{1500, 2000}},
	"cotton":   {[]string{"black", "black_soil", "clay_loam"}, 20, 35, "kharif", "medium", [2]int64{5000, 7000}},
	"mustard":  {[]string{"loam", "sandy_loam", "alluvial"}, 10, 25, "rabi", "low", [2]int64{4500, 5800}},
	"chickpea": {[]string{"loam", "black", "sandy_loam"}, 15, 30, "rabi", "low", [2]int64{4500, 5500}},
	"moong":    {[]string{"loam", "sandy_loam", "red"}, 25, 35, "zaid", "low", [2]int64{6000, 7500}},
}

func normaliseSoil(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func (d suitability) score(season, soil string, w domain.WeatherReading) float64 {
	score := 0.0
	if d.season == season {
		score += 0.4
	}
	for _, s := range d.soils {
		if s == soil {
			score += 0.3
			break
		}
	}
	switch t := w.Temperature; {
	case t >= d.tempMin && t <= d.tempMax:
		score += 0.2
	case t < d.tempMin:
		score += 0.2 * (1 - (d.tempMin-t)/10)
	default:
		score += 0.2 * (1 - (t-d.tempMax)/10)
	}
	if w.Humidity >= 60 {
		score += 0.1
	}
	return clamp(score, 0, 1)
}

func (d suitability) reason(season, soil string) string {
	var reasons []string
	if d.season == season {
		reasons = append(reasons, fmt.Sprintf("right season (%s)", season))
	}
	for _, s := range d.soils {
		if s == soil {
			reasons = append(reasons, fmt.Sprintf("suitable soil (%s)", soil))
			break
		}
	}
	reasons = append(reasons, d.water+" water requirement")
	return strings.Join(reasons, ", ")
}

// CropService serves the crop catalogue and recommendations
type CropService struct {
	catalog domain.CatalogRepository
	weather *WeatherService
}

func NewCropService(catalog domain.CatalogRepository, weather *WeatherService) *CropService {
	return &CropService{catalog: catalog, weather: weather}
}

func (s *CropService) List(ctx context.Context, q domain.CropQuery) (*domain.CropList, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	crops, total, err := s.catalog.Crops(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return &domain.CropList{Crops: crops, Total: total}, nil
}

func (s *CropService) Details(ctx context.Context, id int64) (*domain.CropDetails, error) {
	crop, err := s.catalog.CropDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get crop: %w", err)
	}
	return crop, nil
}

// Recommend scores every catalogue crop against season, soil and current
// weather and returns the best five scoring above 0.5.
func (s *CropService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.Recommendations, error) {
	crops, _, err := s.catalog.Crops(ctx, domain.CropQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	weather := s.weather.Current(req.Location).Weather
	soil := normaliseSoil(req.SoilType)

	recs := []domain.CropRecommendation{}
	for _, c := range crops {
		data, ok := suitabilities[strings.ToLower(c.Name)]
		if !ok {
			continue
		}
		score := data.score(req.Season, soil, weather)
		if score <= 0.5 {
			continue
		}

		details, err := s.catalog.CropDetails(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get crop: %w", err)
		}
		perAcre := 20.0
		if details.AverageYieldPerAcre != nil {
			perAcre = *details.AverageYieldPerAcre
		}
		priceRange, err := s.priceRange(ctx, c.Name, data)
		if err != nil {
			return nil, err
		}

		recs = append(recs, domain.CropRecommendation{
			CropID:           c.ID,
			CropName:         c.Name,
			ScientificName:   c.ScientificName,
			LocalNameHindi:   c.LocalNameHindi,
			SuitabilityScore: math.Round(score*100) / 100,
			Season:           req.Season,
			ExpectedYield:    round1(perAcre * req.FarmSize),
			MarketPrice:      priceRange,
			Reason:           data.reason(req.Season, soil),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SuitabilityScore > recs[j].SuitabilityScore
	})
	if len(recs) > 5 {
		recs = recs[:5]
	}

	return &domain.Recommendations{
		Recommendations: recs,
		Location:        req.Location,
		Season:          req.Season,
		SoilType:        req.SoilType,
		FarmSize:        req.FarmSize,
	}, nil
}

// priceRange spans today's mandi quotes, or a reference range when the crop
// is not quoted.
func (s *CropService) priceRange(ctx context.Context, crop string, data suitability) (domain.PriceRange, error) {
	quotes, _, err := s.catalog.MarketPrices(ctx, domain.PriceQuery{CropName: crop})
	if err != nil {
		return domain.PriceRange{}, fmt.Errorf("failed to list prices: %w", err)
	}
	if len(quotes) == 0 {
		return domain.PriceRange{
			Min: domain.Price{Decimal: decimal.NewFromInt(data.fallbackPrice[0])},
			Max: domain.Price{Decimal: decimal.NewFromInt(data.fallbackPrice[1])},
		}, nil
	}
	lo, hi := quotes[0].MinPrice.Decimal, quotes[0].MaxPrice.Decimal
	for _, q := range quotes[1:] {
		lo = decimal.Min(lo, q.MinPrice.Decimal)
		hi = decimal.Max(hi, q.MaxPrice.Decimal)
	}
	return domain.PriceRange{Min: domain.Price{Decimal: lo}, Max: domain.Price{Decimal: hi}}, nil
}

// SoilService records soil tests against the soil type catalogue
type SoilService struct {
	catalog domain.CatalogRepository
	farm    domain.FarmRepository
}

func NewSoilService(catalog domain.CatalogRepository, farm domain.FarmRepository) *SoilService {
	return &SoilService{catalog: catalog, farm: farm}
}

func (s *SoilService) Types(ctx context.Context) (*domain.SoilTypeList, error) {
	types, err := s.catalog.SoilTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list soil types: %w", err)
	}
	return &domain.SoilTypeList{SoilTypes: types}, nil
}

func (s *SoilService) AddTest(ctx context.Context, userID int64, in domain.SoilTestInput) (*domain.AddSoilTestResponse, error) {
	id, err := s.farm.AddSoilTest(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to add soil test: %w", err)
	}
	return &domain.AddSoilTestResponse{Message: "Soil test added successfully", SoilTestID: id}, nil
}

func (s *SoilService) Tests(ctx context.Context, userID int64) (*domain.SoilTestList, error) {
	tests, err := s.farm.ListSoilTests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list soil tests: %w", err)
	}
	return &domain.SoilTestList{SoilTests: tests, Total: len(tests)}, nil
}

// ShopService serves agri-input shops and their stock
type ShopService struct {
	catalog domain.CatalogRepository
}

func NewShopService(catalog domain.CatalogRepository) *ShopService {
	return &ShopService{catalog: catalog}
}

func (s *ShopService) List(ctx context.Context, q domain.ShopQuery) (*domain.ShopList, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	shops, total, err := s.catalog.Shops(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return &domain.ShopList{Shops: shops, Total: total}, nil
}

func (s *ShopService) Inventory(ctx context.Context, shopID int64, productType string) (*domain.Inventory, error) {
	inv, err := s.catalog.ShopInventory(ctx, shopID, productType)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return inv, nil
}

func (s *ShopService) SearchProducts(ctx context.Context, term string) (*domain.ProductSearch, error) {
	matches, err := s.catalog.SearchProducts(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return &domain.ProductSearch{Products: matches, Query: term, Total: len(matches)}, nil
}
