package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// UploadMediaRequest - запрос на загрузку изображения автомобиля
type UploadMediaRequest struct {
	VehicleID   string `json:"vehicle_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	DataBase64  string `json:"data_base64" validate:"required"`
}

// Service содержит бизнес-логику галереи автомобилей
type Service struct {
	mediaRepo   repository.MediaRepository
	vehicleRepo repository.VehicleRepository
	logger      logger.Logger
}

// NewService создает новый экземпляр GalleryService
func NewService(
	mediaRepo repository.MediaRepository,
	vehicleRepo repository.VehicleRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		mediaRepo:   mediaRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// UploadMedia сохраняет изображение для автомобиля
func (s *Service) UploadMedia(ctx context.Context, req *UploadMediaRequest) (*domain.Media, error) {
	// Проверяем, что автомобиль существует
	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	media := &domain.Media{
		ID:          uuid.New(),
		VehicleID:   req.VehicleID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		DataBase64:  req.DataBase64,
	}

	if err := media.Validate(); err != nil {
		return nil, err
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to save media: %w", err)
	}

	s.logger.Info("Media uploaded", map[string]interface{}{
		"media_id":   media.ID,
		"vehicle_id": media.VehicleID,
		"file_name":  media.FileName,
	})

	return media, nil
}

// GetMedia возвращает изображение по ID
func (s *Service) GetMedia(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return media, nil
}

// ListVehicleMedia возвращает все изображения автомобиля
func (s *Service) ListVehicleMedia(ctx context.Context, vehicleID string) ([]*domain.Media, error) {
	media, err := s.mediaRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle media: %w", err)
	}
	return media, nil
}

// DeleteMedia удаляет изображение
func (s *Service) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			return domain.ErrMediaNotFound
		}
		return fmt.Errorf("failed to delete media: %w", err)
	}

	s.logger.Info("Media deleted", map[string]interface{}{
		"media_id": id,
	})

	return nil
}
