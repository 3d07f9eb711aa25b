package client

import (
	"context"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
)

// ShopService finds agri-input shops and what they stock
type ShopService service

func (s *ShopService) List(ctx context.Context, sess *session.Session, sq domain.ShopQuery) (*domain.ShopList, error) {
	var out domain.ShopList
	q := query{}.
		setString("shop_type", sq.ShopType).
		setString("state", sq.State).
		setString("district", sq.District).
		setBool("is_government_approved", sq.IsGovernmentApproved).
		setInt("limit", sq.Limit).
		setInt("offset", sq.Offset)
	if err := s.client.get(ctx, sess, "/shops", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Inventory lists a shop's stock, optionally narrowed to one product type
func (s *ShopService) Inventory(ctx context.Context, sess *session.Session, shopID int64, productType string) (*domain.Inventory, error) {
	var out domain.Inventory
	q := query{}.setString("product_type", productType)
	if err := s.client.get(ctx, sess, pathf("/shops/%s/inventory", shopID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ShopService) SearchProducts(ctx context.Context, sess *session.Session, term string) (*domain.ProductSearch, error) {
	var out domain.ProductSearch
	q := query{}.setString("q", term)
	if err := s.client.get(ctx, sess, "/shops/search-products", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
