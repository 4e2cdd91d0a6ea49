package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/usecase/draft"
)

// DraftService определяет интерфейс для сервиса черновиков
type DraftService interface {
	Create(ctx context.Context) (*domain.Draft, error)
	Get(ctx context.Context, id string) (*domain.Draft, error)
	SetDates(ctx context.Context, id string, req *draft.SetDatesRequest) (*domain.Draft, error)
	SetClient(ctx context.Context, id string, req *draft.SetClientRequest) (*domain.Draft, error)
	ToggleVehicle(ctx context.Context, id string, vehicleID string) (*domain.Draft, error)
	SetPrice(ctx context.Context, id string, vehicleID string, req *draft.SetPriceRequest) (*domain.Draft, error)
	SetSeason(ctx context.Context, id string, vehicleID string, req *draft.SetSeasonRequest) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}

// DraftHandler обрабатывает запросы черновиков смет
type DraftHandler struct {
	draftService DraftService
	logger       logger.Logger
}

// NewDraftHandler создает новый handler
func NewDraftHandler(draftService DraftService, logger logger.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		logger:       logger,
	}
}

// CreateDraft создает новый черновик сметы
// POST /api/v1/drafts
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.draftService.Create(r.Context())
	if err != nil {
		h.logger.Error("Failed to create draft", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// GetDraft возвращает черновик по ID
// GET /api/v1/drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.draftService.Get(r.Context(), getPathParam(r, "id"))
	if err != nil {
		h.respondDraftError(w, err, "Failed to get draft")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// SetDates устанавливает период аренды
// PUT /api/v1/drafts/{id}/dates
func (h *DraftHandler) SetDates(w http.ResponseWriter, r *http.Request) {
	var req draft.SetDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.draftService.SetDates(r.Context(), getPathParam(r, "id"), &req)
	if err != nil {
		h.respondDraftError(w, err, "Failed to set dates")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// SetClient устанавливает данные клиента
// PUT /api/v1/drafts/{id}/client
func (h *DraftHandler) SetClient(w http.ResponseWriter, r *http.Request) {
	var req draft.SetClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.draftService.SetClient(r.Context(), getPathParam(r, "id"), &req)
	if err != nil {
		h.respondDraftError(w, err, "Failed to set client")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// ToggleVehicle добавляет или убирает автомобиль из выборки
// POST /api/v1/drafts/{id}/vehicles/{vehicleId}/toggle
func (h *DraftHandler) ToggleVehicle(w http.ResponseWriter, r *http.Request) {
	d, err := h.draftService.ToggleVehicle(r.Context(), getPathParam(r, "id"), getPathParam(r, "vehicleId"))
	if err != nil {
		h.respondDraftError(w, err, "Failed to toggle vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// SetPrice вручную корректирует цену позиции
// PUT /api/v1/drafts/{id}/vehicles/{vehicleId}/price
func (h *DraftHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req draft.SetPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.draftService.SetPrice(r.Context(), getPathParam(r, "id"), getPathParam(r, "vehicleId"), &req)
	if err != nil {
		h.respondDraftError(w, err, "Failed to set price")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// SetSeason меняет сезон позиции
// PUT /api/v1/drafts/{id}/vehicles/{vehicleId}/season
func (h *DraftHandler) SetSeason(w http.ResponseWriter, r *http.Request) {
	var req draft.SetSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.draftService.SetSeason(r.Context(), getPathParam(r, "id"), getPathParam(r, "vehicleId"), &req)
	if err != nil {
		h.respondDraftError(w, err, "Failed to set season")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    d,
	})
}

// DeleteDraft удаляет черновик
// DELETE /api/v1/drafts/{id}
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.draftService.Delete(r.Context(), getPathParam(r, "id")); err != nil {
		h.respondDraftError(w, err, "Failed to delete draft")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// respondDraftError переводит доменные ошибки черновика в HTTP статусы
func (h *DraftHandler) respondDraftError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		respondError(w, http.StatusNotFound, "Draft not found")
	case errors.Is(err, domain.ErrVehicleNotFound):
		respondError(w, http.StatusNotFound, "Vehicle not found")
	case errors.Is(err, domain.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "Vehicle is not selected in draft")
	case errors.Is(err, domain.ErrInvalidDate):
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	case errors.Is(err, domain.ErrInvalidSeason):
		respondError(w, http.StatusBadRequest, "Invalid season, expected high or low")
	default:
		h.logger.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
