package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
)

// SettingsService определяет интерфейс для сервиса настроек
type SettingsService interface {
	GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error)
	SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error
	GetLogo(ctx context.Context) (string, error)
	SetLogo(ctx context.Context, logoBase64 string) error
}

// SettingsHandler обрабатывает запросы настроек компании
type SettingsHandler struct {
	settingsService SettingsService
	logger          logger.Logger
}

// NewSettingsHandler создает новый handler
func NewSettingsHandler(settingsService SettingsService, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSeasonWindow возвращает окно высокого сезона
// GET /api/v1/settings/season
func (h *SettingsHandler) GetSeasonWindow(w http.ResponseWriter, r *http.Request) {
	window, err := h.settingsService.GetSeasonWindow(r.Context())
	if err != nil {
		h.logger.Error("Failed to get season window", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get season window")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    window,
	})
}

// SetSeasonWindow сохраняет окно высокого сезона
// PUT /api/v1/settings/season
func (h *SettingsHandler) SetSeasonWindow(w http.ResponseWriter, r *http.Request) {
	var window domain.SeasonWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsService.SetSeasonWindow(r.Context(), window); err != nil {
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrValidation) {
			respondError(w, http.StatusUnprocessableEntity, "Invalid season window")
			return
		}
		h.logger.Error("Failed to set season window", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to set season window")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    window,
	})
}

// GetLogo возвращает логотип компании
// GET /api/v1/settings/logo
func (h *SettingsHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := h.settingsService.GetLogo(r.Context())
	if err != nil {
		h.logger.Error("Failed to get logo", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get logo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"logo_base64": logo,
		},
	})
}

// SetLogo сохраняет логотип компании
// PUT /api/v1/settings/logo
func (h *SettingsHandler) SetLogo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LogoBase64 string `json:"logo_base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsService.SetLogo(r.Context(), req.LogoBase64); err != nil {
		h.logger.Error("Failed to set logo", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to set logo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
