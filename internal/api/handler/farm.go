package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/service"
)

// CropHandler serves the crop catalogue and recommendations
type CropHandler struct {
	cropService *service.CropService
}

func NewCropHandler(cropService *service.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

func (h *CropHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	cq := domain.CropQuery{
		Limit:  q.Int("limit", 0),
		Offset: q.Int("offset", 0),
		Search: q.String("search"),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.cropService.List(r.Context(), cq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *CropHandler) Details(w http.ResponseWriter, r *http.Request) {
	cropID, ok := pathID(w, r, "cropID")
	if !ok {
		return
	}

	resp, err := h.cropService.Details(r.Context(), cropID)
	if err != nil {
		fail(w, r, err, "Crop not found")
		return
	}
	response.OK(w, resp)
}

func (h *CropHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input domain.RecommendationRequest
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.cropService.Recommend(r.Context(), input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// SoilHandler serves soil types and the user's soil tests
type SoilHandler struct {
	soilService *service.SoilService
}

func NewSoilHandler(soilService *service.SoilService) *SoilHandler {
	return &SoilHandler{soilService: soilService}
}

func (h *SoilHandler) Types(w http.ResponseWriter, r *http.Request) {
	resp, err := h.soilService.Types(r.Context())
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *SoilHandler) AddTest(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input domain.SoilTestInput
	if !decode(w, r, &input) {
		return
	}

	resp, err := h.soilService.AddTest(r.Context(), id, input)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *SoilHandler) Tests(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	resp, err := h.soilService.Tests(r.Context(), id)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

// ShopHandler serves agri-input shops and their stock
type ShopHandler struct {
	shopService *service.ShopService
}

func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query(r)
	sq := domain.ShopQuery{
		ShopType:             q.String("shop_type"),
		State:                q.String("state"),
		District:             q.String("district"),
		IsGovernmentApproved: q.Bool("is_government_approved"),
		Limit:                q.Int("limit", 0),
		Offset:               q.Int("offset", 0),
	}
	if !q.ok(w) {
		return
	}

	resp, err := h.shopService.List(r.Context(), sq)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ShopHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	shopID, ok := pathID(w, r, "shopID")
	if !ok {
		return
	}

	resp, err := h.shopService.Inventory(r.Context(), shopID, r.URL.Query().Get("product_type"))
	if err != nil {
		fail(w, r, err, "Shop not found")
		return
	}
	response.OK(w, resp)
}

func (h *ShopHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		response.Unprocessable(w, "field required", "query", "q")
		return
	}

	resp, err := h.shopService.SearchProducts(r.Context(), term)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
