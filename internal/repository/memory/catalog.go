package memory

import (
	"context"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
)

type catalog struct {
	crops     []domain.CropDetails
	soilTypes []domain.SoilType
	shops     []domain.Shop
	inventory map[int64][]domain.InventoryItem
	prices    []domain.MarketPrice
	insights  []domain.MarketInsight
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) Crops(_ context.Context, q domain.CropQuery) ([]domain.Crop, int, error) {
	var out []domain.Crop
	for _, c := range s.catalog.crops {
		if q.Search != "" &&
			!containsFold(c.Name, q.Search) &&
			!containsFold(deref(c.LocalNameHindi), q.Search) &&
			!containsFold(deref(c.ScientificName), q.Search) {
			continue
		}
		out = append(out, c.Crop)
	}
	return page(out, q.Limit, q.Offset), len(out), nil
}

func (s *Store) CropDetails(_ context.Context, id int64) (*domain.CropDetails, error) {
	for _, c := range s.catalog.crops {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) SoilTypes(context.Context) ([]domain.SoilType, error) {
	out := make([]domain.SoilType, len(s.catalog.soilTypes))
	copy(out, s.catalog.soilTypes)
	return out, nil
}

func (s *Store) Shops(_ context.Context, q domain.ShopQuery) ([]domain.Shop, int, error) {
	var out []domain.Shop
	for _, shop := range s.catalog.shops {
		if q.ShopType != "" && shop.ShopType != q.ShopType {
			continue
		}
		if q.State != "" && !strings.EqualFold(shop.State, q.State) {
			continue
		}
		if q.District != "" && !strings.EqualFold(shop.District, q.District) {
			continue
		}
		if q.IsGovernmentApproved != nil && shop.IsGovernmentApproved != *q.IsGovernmentApproved {
			continue
		}
		out = append(out, shop)
	}
	return page(out, q.Limit, q.Offset), len(out), nil
}

func (s *Store) shop(id int64) (domain.Shop, bool) {
	for _, shop := range s.catalog.shops {
		if shop.ID == id {
			return shop, true
		}
	}
	return domain.Shop{}, false
}

func (s *Store) ShopInventory(_ context.Context, shopID int64, productType string) (*domain.Inventory, error) {
	shop, ok := s.shop(shopID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	items := []domain.InventoryItem{}
	for _, item := range s.catalog.inventory[shopID] {
		if productType != "" && item.ProductType != productType {
			continue
		}
		items = append(items, item)
	}
	return &domain.Inventory{
		ShopID:    shop.ID,
		ShopName:  shop.Name,
		Inventory: items,
		Total:     len(items),
	}, nil
}

// SearchProducts matches available items by name, brand or type
func (s *Store) SearchProducts(_ context.Context, term string) ([]domain.ProductMatch, error) {
	out := []domain.ProductMatch{}
	for _, shop := range s.catalog.shops {
		for _, item := range s.catalog.inventory[shop.ID] {
			if !item.IsAvailable {
				continue
			}
			if !containsFold(item.ProductName, term) &&
				!containsFold(deref(item.Brand), term) &&
				!containsFold(item.ProductType, term) {
				continue
			}
			out = append(out, domain.ProductMatch{
				ID:                     item.ID,
				ProductName:            item.ProductName,
				ProductType:            item.ProductType,
				Brand:                  item.Brand,
				Variety:                item.Variety,
				PricePerUnit:           item.PricePerUnit,
				Unit:                   item.Unit,
				DiscountPercentage:     item.DiscountPercentage,
				IsOrganic:              item.IsOrganic,
				IsGovernmentSubsidized: item.IsGovernmentSubsidized,
				Shop: domain.ShopSummary{
					ID:                   shop.ID,
					Name:                 shop.Name,
					ShopType:             shop.ShopType,
					Address:              shop.Address,
					State:                shop.State,
					District:             shop.District,
					PhoneNumber:          shop.PhoneNumber,
					IsGovernmentApproved: shop.IsGovernmentApproved,
				},
			})
		}
	}
	return out, nil
}

func (s *Store) MarketPrices(_ context.Context, q domain.PriceQuery) ([]domain.MarketPrice, int, error) {
	var out []domain.MarketPrice
	for _, p := range s.catalog.prices {
		if q.CropName != "" && !strings.EqualFold(p.CropName, q.CropName) {
			continue
		}
		if q.MarketName != "" && !containsFold(p.MarketName, q.MarketName) {
			continue
		}
		if q.State != "" && !strings.EqualFold(p.State, q.State) {
			continue
		}
		if q.District != "" && !strings.EqualFold(p.District, q.District) {
			continue
		}
		out = append(out, p)
	}
	return page(out, q.Limit, q.Offset), len(out), nil
}

func (s *Store) MarketInsights(_ context.Context, q domain.InsightQuery) ([]domain.MarketInsight, error) {
	out := []domain.MarketInsight{}
	for _, in := range s.catalog.insights {
		if q.CropName != "" && !strings.EqualFold(deref(in.CropName), q.CropName) {
			continue
		}
		if q.Region != "" && !containsFold(deref(in.Region), q.Region) {
			continue
		}
		if q.InsightType != "" && in.InsightType != q.InsightType {
			continue
		}
		out = append(out, in)
	}
	return page(out, q.Limit, 0), nil
}
