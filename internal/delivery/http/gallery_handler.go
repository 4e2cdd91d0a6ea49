package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/usecase/gallery"
	"github.com/google/uuid"
)

// GalleryService определяет интерфейс для сервиса галереи
type GalleryService interface {
	UploadMedia(ctx context.Context, req *gallery.UploadMediaRequest) (*domain.Media, error)
	GetMedia(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	ListVehicleMedia(ctx context.Context, vehicleID string) ([]*domain.Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
}

// GalleryHandler обрабатывает запросы галереи автомобилей
type GalleryHandler struct {
	galleryService GalleryService
	logger         logger.Logger
}

// NewGalleryHandler создает новый handler
func NewGalleryHandler(galleryService GalleryService, logger logger.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		logger:         logger,
	}
}

// UploadMedia загружает изображение для автомобиля
// POST /api/v1/vehicles/{id}/media
func (h *GalleryHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	var req gallery.UploadMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.VehicleID = getPathParam(r, "id")

	media, err := h.galleryService.UploadMedia(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound):
			respondError(w, http.StatusNotFound, "Vehicle not found")
		case errors.Is(err, domain.ErrInvalidMediaData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid media data")
		default:
			h.logger.Error("Failed to upload media", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to upload media")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    media,
	})
}

// ListVehicleMedia возвращает галерею автомобиля
// GET /api/v1/vehicles/{id}/media
func (h *GalleryHandler) ListVehicleMedia(w http.ResponseWriter, r *http.Request) {
	media, err := h.galleryService.ListVehicleMedia(r.Context(), getPathParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to list vehicle media", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list vehicle media")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    media,
	})
}

// GetMedia возвращает элемент галереи по ID
// GET /api/v1/media/{id}
func (h *GalleryHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := uuid.Parse(getPathParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	media, err := h.galleryService.GetMedia(r.Context(), mediaID)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			respondError(w, http.StatusNotFound, "Media not found")
			return
		}
		h.logger.Error("Failed to get media", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get media")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    media,
	})
}

// DeleteMedia удаляет элемент галереи
// DELETE /api/v1/media/{id}
func (h *GalleryHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := uuid.Parse(getPathParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid media ID")
		return
	}

	if err := h.galleryService.DeleteMedia(r.Context(), mediaID); err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			respondError(w, http.StatusNotFound, "Media not found")
			return
		}
		h.logger.Error("Failed to delete media", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
