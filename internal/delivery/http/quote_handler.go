package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
)

// QuoteService определяет интерфейс для сервиса смет
type QuoteService interface {
	Finalize(ctx context.Context, draftID string) (*domain.Quote, error)
	Get(ctx context.Context, id string) (*domain.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Quote, error)
	Duplicate(ctx context.Context, id string) (*domain.Draft, error)
	Render(ctx context.Context, id string) (*domain.Quote, error)
	GetPDF(ctx context.Context, id string) (string, error)
	GetImage(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// QuoteHandler обрабатывает запросы смет и их истории
type QuoteHandler struct {
	quoteService QuoteService
	logger       logger.Logger
}

// NewQuoteHandler создает новый handler
func NewQuoteHandler(quoteService QuoteService, logger logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// Finalize превращает черновик в смету
// POST /api/v1/drafts/{id}/finalize
func (h *QuoteHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.Finalize(r.Context(), getPathParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDraftNotFound):
			respondError(w, http.StatusNotFound, "Draft not found")
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrFinalizeInProgress):
			respondError(w, http.StatusConflict, "Draft is already being finalized")
		default:
			h.logger.Error("Failed to finalize draft", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to finalize draft")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    quote,
	})
}

// ListQuotes возвращает историю смет, новые первыми
// GET /api/v1/quotes
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	limit := getQueryInt(r, "limit", 50)
	offset := getQueryInt(r, "offset", 0)

	quotes, err := h.quoteService.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list quotes", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    quotes,
	})
}

// GetQuote возвращает смету по ID
// GET /api/v1/quotes/{id}
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.Get(r.Context(), getPathParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("Failed to get quote", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get quote")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    quote,
	})
}

// DuplicateQuote разворачивает смету в новый черновик для редактирования
// POST /api/v1/quotes/{id}/duplicate
func (h *QuoteHandler) DuplicateQuote(w http.ResponseWriter, r *http.Request) {
	draft, err := h.quoteService.Duplicate(r.Context(), getPathParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("Failed to duplicate quote", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to duplicate quote")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    draft,
	})
}

// RenderQuote повторно генерирует артефакты сметы
// POST /api/v1/quotes/{id}/render
func (h *QuoteHandler) RenderQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.Render(r.Context(), getPathParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuoteNotFound):
			respondError(w, http.StatusNotFound, "Quote not found")
		case errors.Is(err, domain.ErrRenderFailed):
			respondError(w, http.StatusBadGateway, "Rendering service is unavailable")
		default:
			h.logger.Error("Failed to render quote", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to render quote")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    quote,
	})
}

// GetQuotePDF возвращает PDF артефакт сметы
// GET /api/v1/quotes/{id}/pdf
func (h *QuoteHandler) GetQuotePDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.quoteService.GetPDF(r.Context(), getPathParam(r, "id"))
	if err != nil {
		h.respondArtifactError(w, err, "Failed to get quote PDF")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"pdf_base64": pdf,
		},
	})
}

// GetQuoteImage возвращает изображение сметы
// GET /api/v1/quotes/{id}/image
func (h *QuoteHandler) GetQuoteImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.quoteService.GetImage(r.Context(), getPathParam(r, "id"))
	if err != nil {
		h.respondArtifactError(w, err, "Failed to get quote image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"image_base64": image,
		},
	})
}

// DeleteQuote удаляет смету из истории
// DELETE /api/v1/quotes/{id}
func (h *QuoteHandler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := h.quoteService.Delete(r.Context(), getPathParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("Failed to delete quote", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete quote")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *QuoteHandler) respondArtifactError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrQuoteNotFound):
		respondError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, domain.ErrArtifactNotFound):
		respondError(w, http.StatusNotFound, "Artifact is not rendered yet")
	default:
		h.logger.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
