package handler

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/service"
)

// ImageHandler runs the photo classifiers. Uploads arrive in the "image"
// form field; crop_type is a query parameter.
type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) ClassifyDisease(w http.ResponseWriter, r *http.Request) {
	data, _, ok := readImage(w, r, "image")
	if !ok {
		return
	}
	resp, err := h.imageService.ClassifyDisease(data, r.URL.Query().Get("crop_type"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ImageHandler) ClassifyPest(w http.ResponseWriter, r *http.Request) {
	data, _, ok := readImage(w, r, "image")
	if !ok {
		return
	}
	resp, err := h.imageService.ClassifyPest(data, r.URL.Query().Get("crop_type"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ImageHandler) ClassifyCrop(w http.ResponseWriter, r *http.Request) {
	data, _, ok := readImage(w, r, "image")
	if !ok {
		return
	}
	resp, err := h.imageService.ClassifyCrop(data)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}

func (h *ImageHandler) AnalyzePlantHealth(w http.ResponseWriter, r *http.Request) {
	data, _, ok := readImage(w, r, "image")
	if !ok {
		return
	}
	resp, err := h.imageService.AnalyzePlantHealth(data, r.URL.Query().Get("crop_type"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	response.OK(w, resp)
}
