package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/infrastructure/renderer"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// Service содержит бизнес-логику формирования и истории смет
type Service struct {
	quoteRepo    repository.QuoteRepository
	draftRepo    repository.DraftRepository
	settingsRepo repository.SettingsRepository
	stateRepo    repository.StateRepository
	renderer     renderer.Client
	logger       logger.Logger
}

// NewService создает новый экземпляр QuoteService
func NewService(
	quoteRepo repository.QuoteRepository,
	draftRepo repository.DraftRepository,
	settingsRepo repository.SettingsRepository,
	stateRepo repository.StateRepository,
	rendererClient renderer.Client,
	logger logger.Logger,
) *Service {
	return &Service{
		quoteRepo:    quoteRepo,
		draftRepo:    draftRepo,
		settingsRepo: settingsRepo,
		stateRepo:    stateRepo,
		renderer:     rendererClient,
		logger:       logger,
	}
}

// Finalize превращает черновик в смету.
// Повторный вызов для того же черновика до завершения первого отклоняется.
// Ошибка рендеринга не блокирует сохранение: смета сохраняется без артефактов.
func (s *Service) Finalize(ctx context.Context, draftID string) (*domain.Quote, error) {
	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	acquired, err := s.stateRepo.AcquireFinalizeLock(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire finalize lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrFinalizeInProgress
	}
	defer func() {
		if err := s.stateRepo.ReleaseFinalizeLock(ctx, draftID); err != nil {
			s.logger.Warn("Failed to release finalize lock", map[string]interface{}{
				"draft_id": draftID,
				"error":    err.Error(),
			})
		}
	}()

	quote := domain.BuildQuote(draft, uuid.NewString(), time.Now())

	s.renderArtifacts(ctx, quote)

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	// Продвигаем счетчик и запоминаем клиента для следующего черновика
	if _, err := s.stateRepo.AdvanceReservationCounter(ctx); err != nil {
		s.logger.Warn("Failed to advance reservation counter", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.stateRepo.SetLastClientName(ctx, quote.ClientName); err != nil {
		s.logger.Warn("Failed to remember client name", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := s.draftRepo.Delete(ctx, draftID); err != nil {
		s.logger.Warn("Failed to delete finalized draft", map[string]interface{}{
			"draft_id": draftID,
			"error":    err.Error(),
		})
	}

	s.logger.Info("Quote finalized", map[string]interface{}{
		"quote_id":           quote.ID,
		"reservation_number": quote.ReservationNumber,
		"total":              quote.Total.String(),
	})

	return quote, nil
}

// Get возвращает смету по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// List возвращает историю смет, новые первыми
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	quotes, err := s.quoteRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// Duplicate разворачивает смету обратно в редактируемый черновик.
// Черновик получает свежий номер брони из счетчика без его продвижения:
// счетчик двинется при финализации, как у любого черновика.
// Сезоны и флаги ручной правки позиций сохраняются.
func (s *Service) Duplicate(ctx context.Context, id string) (*domain.Draft, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	counter, err := s.stateRepo.PeekReservationCounter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to peek reservation counter: %w", err)
	}

	items := make([]domain.SelectionEntry, 0, len(original.Items))
	for _, item := range original.Items {
		items = append(items, domain.SelectionEntry{
			VehicleID:      item.VehicleID,
			VehicleName:    item.VehicleName,
			VehicleType:    item.VehicleType,
			VehicleFuel:    item.VehicleFuel,
			PricePerDay:    item.PricePerDay,
			Season:         item.Season,
			ManuallyEdited: item.ManuallyEdited,
		})
	}

	now := time.Now()
	draft := &domain.Draft{
		ID:                uuid.NewString(),
		ClientName:        original.ClientName,
		ReservationNumber: domain.FormatReservationNumber(counter),
		StartDate:         original.StartDate,
		EndDate:           original.EndDate,
		Days:              original.Days,
		Items:             items,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save duplicated draft: %w", err)
	}

	s.logger.Info("Quote duplicated into draft", map[string]interface{}{
		"source_quote_id":    id,
		"draft_id":           draft.ID,
		"reservation_number": draft.ReservationNumber,
	})

	return draft, nil
}

// Render повторно генерирует артефакты существующей сметы
func (s *Service) Render(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	logo, err := s.settingsRepo.GetLogo(ctx)
	if err != nil {
		s.logger.Warn("Failed to load company logo", map[string]interface{}{
			"error": err.Error(),
		})
		logo = ""
	}

	result, err := s.renderer.RenderQuote(ctx, &renderer.RenderRequest{
		Quote:      quote,
		LogoBase64: logo,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRenderFailed, err.Error())
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrRenderFailed, result.Error)
	}

	quote.PDFBase64 = result.PDFBase64
	quote.ImageBase64 = result.ImageBase64

	if err := s.quoteRepo.UpdateArtifacts(ctx, quote.ID, quote.PDFBase64, quote.ImageBase64); err != nil {
		return nil, fmt.Errorf("failed to update quote artifacts: %w", err)
	}

	return quote, nil
}

// GetPDF возвращает PDF артефакт сметы
func (s *Service) GetPDF(ctx context.Context, id string) (string, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if quote.PDFBase64 == "" {
		return "", domain.ErrArtifactNotFound
	}
	return quote.PDFBase64, nil
}

// GetImage возвращает изображение сметы
func (s *Service) GetImage(ctx context.Context, id string) (string, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if quote.ImageBase64 == "" {
		return "", domain.ErrArtifactNotFound
	}
	return quote.ImageBase64, nil
}

// Delete удаляет смету из истории
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			return domain.ErrQuoteNotFound
		}
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}

// renderArtifacts пытается сгенерировать артефакты сметы.
// Недоступность сервиса рендеринга не считается ошибкой.
func (s *Service) renderArtifacts(ctx context.Context, quote *domain.Quote) {
	logo, err := s.settingsRepo.GetLogo(ctx)
	if err != nil {
		s.logger.Warn("Failed to load company logo", map[string]interface{}{
			"error": err.Error(),
		})
		logo = ""
	}

	result, err := s.renderer.RenderQuote(ctx, &renderer.RenderRequest{
		Quote:      quote,
		LogoBase64: logo,
	})
	if err != nil {
		s.logger.Warn("Quote rendering failed, saving without artifacts", map[string]interface{}{
			"quote_id": quote.ID,
			"error":    err.Error(),
		})
		return
	}
	if !result.Success {
		s.logger.Warn("Renderer rejected quote, saving without artifacts", map[string]interface{}{
			"quote_id": quote.ID,
			"error":    result.Error,
		})
		return
	}

	quote.PDFBase64 = result.PDFBase64
	quote.ImageBase64 = result.ImageBase64
}
