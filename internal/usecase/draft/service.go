package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// SetDatesRequest - запрос на установку периода аренды
type SetDatesRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// SetClientRequest - запрос на установку данных клиента
type SetClientRequest struct {
	ClientName        *string `json:"client_name,omitempty"`
	ReservationNumber *string `json:"reservation_number,omitempty"`
}

// SetPriceRequest - запрос на ручную корректировку цены позиции.
// Цена принимается как есть: число, строка с запятой или точкой;
// неразборчивое значение деградирует до нуля
type SetPriceRequest struct {
	PricePerDay interface{} `json:"price_per_day"`
}

// SetSeasonRequest - запрос на смену сезона позиции
type SetSeasonRequest struct {
	Season string `json:"season" validate:"required,oneof=high low"`
}

// Service содержит бизнес-логику черновика сметы
type Service struct {
	draftRepo    repository.DraftRepository
	vehicleRepo  repository.VehicleRepository
	settingsRepo repository.SettingsRepository
	stateRepo    repository.StateRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр DraftService
func NewService(
	draftRepo repository.DraftRepository,
	vehicleRepo repository.VehicleRepository,
	settingsRepo repository.SettingsRepository,
	stateRepo repository.StateRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		draftRepo:    draftRepo,
		vehicleRepo:  vehicleRepo,
		settingsRepo: settingsRepo,
		stateRepo:    stateRepo,
		logger:       logger,
	}
}

// Create создает новый черновик сметы.
// Имя клиента и номер брони предзаполняются из состояния сессии:
// имя последнего клиента и следующий номер счетчика без его продвижения.
func (s *Service) Create(ctx context.Context) (*domain.Draft, error) {
	counter, err := s.stateRepo.PeekReservationCounter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to peek reservation counter: %w", err)
	}

	lastClient, err := s.stateRepo.LastClientName(ctx)
	if err != nil {
		s.logger.Warn("Failed to load last client name", map[string]interface{}{
			"error": err.Error(),
		})
		lastClient = ""
	}

	now := time.Now()
	draft := &domain.Draft{
		ID:                uuid.NewString(),
		ClientName:        lastClient,
		ReservationNumber: domain.FormatReservationNumber(counter),
		Items:             []domain.SelectionEntry{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("Draft created", map[string]interface{}{
		"draft_id":           draft.ID,
		"reservation_number": draft.ReservationNumber,
	})

	return draft, nil
}

// Get возвращает черновик по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

// SetDates устанавливает период аренды и пересчитывает количество дней.
// Цены уже выбранных позиций не пересчитываются: сезон позиции
// фиксируется в момент добавления и меняется только явной командой.
func (s *Service) SetDates(ctx context.Context, id string, req *SetDatesRequest) (*domain.Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	draft.StartDate = req.StartDate
	draft.EndDate = req.EndDate
	draft.Days = domain.RentalDays(start, end)

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// SetClient устанавливает имя клиента и номер брони
func (s *Service) SetClient(ctx context.Context, id string, req *SetClientRequest) (*domain.Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		draft.ClientName = *req.ClientName
	}
	if req.ReservationNumber != nil {
		draft.ReservationNumber = *req.ReservationNumber
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// ToggleVehicle добавляет автомобиль в выборку или убирает его, если он уже выбран.
// При добавлении сезон определяется по текущим датам черновика,
// а цена берется из тарифа автомобиля для этого сезона.
func (s *Service) ToggleVehicle(ctx context.Context, id string, vehicleID string) (*domain.Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Повторный выбор снимает позицию
	if _, idx := draft.Entry(vehicleID); idx >= 0 {
		draft.RemoveEntry(idx)
		if err := s.draftRepo.Save(ctx, draft); err != nil {
			return nil, fmt.Errorf("failed to save draft: %w", err)
		}
		return draft, nil
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	season, err := s.classifyDraftSeason(ctx, draft)
	if err != nil {
		return nil, err
	}

	draft.Items = append(draft.Items, domain.SelectionEntry{
		VehicleID:      vehicle.ID,
		VehicleName:    vehicle.Name,
		VehicleType:    vehicle.Type,
		VehicleFuel:    vehicle.Fuel,
		PricePerDay:    vehicle.RateFor(season),
		Season:         season,
		ManuallyEdited: false,
	})

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// SetPrice вручную корректирует цену позиции.
// После ручной правки цена больше не следует за сменой сезона.
func (s *Service) SetPrice(ctx context.Context, id string, vehicleID string, req *SetPriceRequest) (*domain.Draft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, idx := draft.Entry(vehicleID)
	if idx < 0 {
		return nil, domain.ErrEntryNotFound
	}

	entry.PricePerDay = domain.ToDecimal(req.PricePerDay)
	entry.ManuallyEdited = true

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// SetSeason меняет сезон позиции.
// Цена пересчитывается из тарифа автомобиля, если не была правлена вручную.
func (s *Service) SetSeason(ctx context.Context, id string, vehicleID string, req *SetSeasonRequest) (*domain.Draft, error) {
	season, err := domain.ParseSeason(req.Season)
	if err != nil {
		return nil, domain.ErrInvalidSeason
	}

	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, idx := draft.Entry(vehicleID)
	if idx < 0 {
		return nil, domain.ErrEntryNotFound
	}

	entry.Season = season

	if !entry.ManuallyEdited {
		vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, domain.ErrVehicleNotFound) {
				return nil, domain.ErrVehicleNotFound
			}
			return nil, fmt.Errorf("failed to get vehicle: %w", err)
		}
		entry.PricePerDay = vehicle.RateFor(season)
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// Delete удаляет черновик
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.draftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return domain.ErrDraftNotFound
		}
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// classifyDraftSeason определяет сезон по датам черновика и окну высокого сезона.
// Без дат или без окна сезон считается низким.
func (s *Service) classifyDraftSeason(ctx context.Context, draft *domain.Draft) (domain.Season, error) {
	if draft.StartDate == "" || draft.EndDate == "" {
		return domain.SeasonLow, nil
	}

	start, err := domain.ParseDate(draft.StartDate)
	if err != nil {
		return domain.SeasonLow, nil
	}
	end, err := domain.ParseDate(draft.EndDate)
	if err != nil {
		return domain.SeasonLow, nil
	}

	window, err := s.settingsRepo.GetSeasonWindow(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get season window: %w", err)
	}

	return domain.ClassifySeason(start, end, window), nil
}
