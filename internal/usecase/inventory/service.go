package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/shopspring/decimal"
)

// UpdateVehicleRequest - запрос на обновление автомобиля.
// Указатели отличают "не передано" от пустого значения.
type UpdateVehicleRequest struct {
	Name            *string          `json:"name,omitempty"`
	Type            *string          `json:"type,omitempty"`
	Fuel            *string          `json:"fuel,omitempty"`
	Seats           *int             `json:"seats,omitempty"`
	Deposit         *decimal.Decimal `json:"deposit,omitempty"`
	LowSeasonPrice  *decimal.Decimal `json:"low_season_price,omitempty"`
	HighSeasonPrice *decimal.Decimal `json:"high_season_price,omitempty"`
}

// ImportResult - результат пакетного импорта каталога
type ImportResult struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Vehicles []*domain.Vehicle `json:"vehicles"`
}

// Service содержит бизнес-логику работы с каталогом автомобилей
type Service struct {
	vehicleRepo repository.VehicleRepository
	logger      logger.Logger
}

// NewService создает новый экземпляр InventoryService
func NewService(vehicleRepo repository.VehicleRepository, logger logger.Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// CreateVehicle нормализует и сохраняет новый автомобиль.
// Входные данные принимаются как произвольный JSON объект:
// каталоги приходят из разных источников с разными именами полей.
func (s *Service) CreateVehicle(ctx context.Context, raw map[string]interface{}) (*domain.Vehicle, error) {
	vehicle := domain.NormalizeVehicle(raw)

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("Vehicle created", map[string]interface{}{
		"vehicle_id": vehicle.ID,
		"name":       vehicle.Name,
	})

	return vehicle, nil
}

// GetVehicle возвращает автомобиль по ID
func (s *Service) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

// ListVehicles возвращает каталог с учетом фильтров
func (s *Service) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicle обновляет переданные поля автомобиля
func (s *Service) UpdateVehicle(ctx context.Context, id string, req *UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Type != nil {
		vehicle.Type = *req.Type
	}
	if req.Fuel != nil {
		vehicle.Fuel = *req.Fuel
	}
	if req.Seats != nil {
		vehicle.Seats = req.Seats
	}
	if req.Deposit != nil {
		vehicle.Deposit = req.Deposit
	}
	if req.LowSeasonPrice != nil {
		vehicle.LowSeasonPrice = *req.LowSeasonPrice
	}
	if req.HighSeasonPrice != nil {
		vehicle.HighSeasonPrice = *req.HighSeasonPrice
	}

	// Инвариант каталога: цена высокого сезона не ниже низкого
	if vehicle.HighSeasonPrice.LessThan(vehicle.LowSeasonPrice) {
		vehicle.HighSeasonPrice = vehicle.LowSeasonPrice
	}

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.logger.Info("Vehicle updated", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	return vehicle, nil
}

// DeleteVehicle деактивирует автомобиль (мягкое удаление)
func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return domain.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("Vehicle deactivated", map[string]interface{}{
		"vehicle_id": id,
	})

	return nil
}

// ImportVehicles нормализует и сохраняет пакет записей каталога.
// Некорректные записи пропускаются, импорт продолжается.
func (s *Service) ImportVehicles(ctx context.Context, raws []map[string]interface{}) (*ImportResult, error) {
	result := &ImportResult{
		Vehicles: make([]*domain.Vehicle, 0, len(raws)),
	}

	for i, raw := range raws {
		vehicle := domain.NormalizeVehicle(raw)
		if err := vehicle.Validate(); err != nil {
			s.logger.Warn("Skipping invalid catalog record", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			result.Skipped++
			continue
		}

		if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
			s.logger.Warn("Failed to import catalog record", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			result.Skipped++
			continue
		}

		result.Imported++
		result.Vehicles = append(result.Vehicles, vehicle)
	}

	s.logger.Info("Catalog import finished", map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})

	return result, nil
}

// EnsureSeed загружает стартовый каталог, если база пуста
func (s *Service) EnsureSeed(ctx context.Context) error {
	count, err := s.vehicleRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count vehicles: %w", err)
	}
	if count > 0 {
		return nil
	}

	s.logger.Info("Vehicle catalog is empty, loading seed data")

	result, err := s.ImportVehicles(ctx, seedCatalog())
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	s.logger.Info("Seed catalog loaded", map[string]interface{}{
		"imported": result.Imported,
	})

	return nil
}
