package settings

import (
	"context"
	"fmt"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
)

// Service содержит бизнес-логику настроек компании
type Service struct {
	settingsRepo repository.SettingsRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр SettingsService
func NewService(settingsRepo repository.SettingsRepository, logger logger.Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSeasonWindow возвращает текущее окно высокого сезона
func (s *Service) GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error) {
	window, err := s.settingsRepo.GetSeasonWindow(ctx)
	if err != nil {
		return domain.SeasonWindow{}, fmt.Errorf("failed to get season window: %w", err)
	}
	return window, nil
}

// SetSeasonWindow сохраняет окно высокого сезона.
// Пустое окно допустимо: тогда весь год считается низким сезоном.
func (s *Service) SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	if err := s.settingsRepo.SetSeasonWindow(ctx, window); err != nil {
		return fmt.Errorf("failed to set season window: %w", err)
	}

	s.logger.Info("Season window updated", map[string]interface{}{
		"high_season_start": window.HighSeasonStart,
		"high_season_end":   window.HighSeasonEnd,
	})

	return nil
}

// GetLogo возвращает логотип компании в base64
func (s *Service) GetLogo(ctx context.Context) (string, error) {
	logo, err := s.settingsRepo.GetLogo(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get logo: %w", err)
	}
	return logo, nil
}

// SetLogo сохраняет логотип компании
func (s *Service) SetLogo(ctx context.Context, logoBase64 string) error {
	if err := s.settingsRepo.SetLogo(ctx, logoBase64); err != nil {
		return fmt.Errorf("failed to set logo: %w", err)
	}

	s.logger.Info("Company logo updated")

	return nil
}
