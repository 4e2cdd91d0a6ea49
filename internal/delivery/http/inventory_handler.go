package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/frontandrew/rental/internal/usecase/inventory"
	"github.com/shopspring/decimal"
)

// InventoryService определяет интерфейс для сервиса каталога
type InventoryService interface {
	CreateVehicle(ctx context.Context, raw map[string]interface{}) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, req *inventory.UpdateVehicleRequest) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	ImportVehicles(ctx context.Context, raws []map[string]interface{}) (*inventory.ImportResult, error)
}

// InventoryHandler обрабатывает запросы каталога автомобилей
type InventoryHandler struct {
	inventoryService InventoryService
	logger           logger.Logger
}

// NewInventoryHandler создает новый handler
func NewInventoryHandler(inventoryService InventoryService, logger logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// CreateVehicle добавляет автомобиль в каталог
// POST /api/v1/vehicles
func (h *InventoryHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.inventoryService.CreateVehicle(r.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidVehicleData) {
			respondError(w, http.StatusUnprocessableEntity, "Invalid vehicle data")
			return
		}
		h.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    vehicle,
	})
}

// ListVehicles возвращает каталог с учетом фильтров
// GET /api/v1/vehicles
func (h *InventoryHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	filter := repository.VehicleFilter{
		Type:   r.URL.Query().Get("type"),
		Fuel:   r.URL.Query().Get("fuel"),
		Search: r.URL.Query().Get("search"),
	}
	if v := getQueryInt(r, "min_seats", 0); v > 0 {
		filter.MinSeats = v
	}
	if raw := r.URL.Query().Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid max_price")
			return
		}
		filter.MaxPrice = maxPrice
	}

	vehicles, err := h.inventoryService.ListVehicles(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicles,
	})
}

// GetVehicle возвращает автомобиль по ID
// GET /api/v1/vehicles/{id}
func (h *InventoryHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := getPathParam(r, "id")
	if vehicleID == "" {
		respondError(w, http.StatusBadRequest, "Vehicle ID is required")
		return
	}

	vehicle, err := h.inventoryService.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicle,
	})
}

// UpdateVehicle обновляет поля автомобиля
// PATCH /api/v1/vehicles/{id}
func (h *InventoryHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := getPathParam(r, "id")

	var req inventory.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vehicle, err := h.inventoryService.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidVehicleData) {
			respondError(w, http.StatusUnprocessableEntity, "Invalid vehicle data")
			return
		}
		h.logger.Error("Failed to update vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicle,
	})
}

// DeleteVehicle деактивирует автомобиль
// DELETE /api/v1/vehicles/{id}
func (h *InventoryHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := getPathParam(r, "id")

	if err := h.inventoryService.DeleteVehicle(r.Context(), vehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to delete vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// ImportVehicles импортирует пакет записей каталога
// POST /api/v1/vehicles/import
func (h *InventoryHandler) ImportVehicles(w http.ResponseWriter, r *http.Request) {
	var raws []map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.inventoryService.ImportVehicles(r.Context(), raws)
	if err != nil {
		h.logger.Error("Failed to import vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to import vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
