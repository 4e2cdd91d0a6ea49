package draft

import (
	"context"
	"testing"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDraftRepository - мок для draft repository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleRepository - мок для vehicle repository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepository - мок для settings repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SeasonWindow), args.Error(1)
}

func (m *MockSettingsRepository) SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetLogo(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) SetLogo(ctx context.Context, logoBase64 string) error {
	args := m.Called(ctx, logoBase64)
	return args.Error(0)
}

// MockStateRepository - мок для state repository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) PeekReservationCounter(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStateRepository) AdvanceReservationCounter(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStateRepository) LastClientName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockStateRepository) SetLastClientName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStateRepository) AcquireFinalizeLock(ctx context.Context, draftID string) (bool, error) {
	args := m.Called(ctx, draftID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStateRepository) ReleaseFinalizeLock(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func newTestService(
	draftRepo *MockDraftRepository,
	vehicleRepo *MockVehicleRepository,
	settingsRepo *MockSettingsRepository,
	stateRepo *MockStateRepository,
) *Service {
	return NewService(draftRepo, vehicleRepo, settingsRepo, stateRepo, logger.NewNoop())
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:              "v1",
		Name:            "Toyota Camry",
		Type:            "Sedan",
		Fuel:            "Gasolina",
		LowSeasonPrice:  decimal.NewFromInt(62),
		HighSeasonPrice: decimal.NewFromInt(69),
		IsActive:        true,
	}
}

// TestDraftService_Create тестирует создание черновика с предзаполнением
func TestDraftService_Create(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockDraftRepository, *MockStateRepository)
		expectedError  bool
		expectedNumber string
		expectedClient string
	}{
		{
			name: "номер брони из счетчика без продвижения",
			mockSetup: func(draftRepo *MockDraftRepository, stateRepo *MockStateRepository) {
				stateRepo.On("PeekReservationCounter", mock.Anything).Return(int64(7), nil)
				stateRepo.On("LastClientName", mock.Anything).Return("Maria", nil)
				draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)
			},
			expectedNumber: "#0007",
			expectedClient: "Maria",
		},
		{
			name: "недоступное имя клиента не мешает созданию",
			mockSetup: func(draftRepo *MockDraftRepository, stateRepo *MockStateRepository) {
				stateRepo.On("PeekReservationCounter", mock.Anything).Return(int64(1), nil)
				stateRepo.On("LastClientName", mock.Anything).Return("", assert.AnError)
				draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)
			},
			expectedNumber: "#0001",
			expectedClient: "",
		},
		{
			name: "ошибка счетчика прерывает создание",
			mockSetup: func(draftRepo *MockDraftRepository, stateRepo *MockStateRepository) {
				stateRepo.On("PeekReservationCounter", mock.Anything).Return(int64(0), assert.AnError)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draftRepo := new(MockDraftRepository)
			vehicleRepo := new(MockVehicleRepository)
			settingsRepo := new(MockSettingsRepository)
			stateRepo := new(MockStateRepository)
			tt.mockSetup(draftRepo, stateRepo)

			service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
			draft, err := service.Create(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedNumber, draft.ReservationNumber)
			assert.Equal(t, tt.expectedClient, draft.ClientName)
			assert.Empty(t, draft.Items)
			stateRepo.AssertNotCalled(t, "AdvanceReservationCounter", mock.Anything)
		})
	}
}

// TestDraftService_SetDates тестирует установку периода аренды
func TestDraftService_SetDates(t *testing.T) {
	tests := []struct {
		name          string
		request       *SetDatesRequest
		draft         *domain.Draft
		expectedDays  int
		expectedError error
	}{
		{
			name:         "четыре полных дня",
			request:      &SetDatesRequest{StartDate: "2025-07-01", EndDate: "2025-07-05"},
			draft:        &domain.Draft{ID: "d1", Items: []domain.SelectionEntry{}},
			expectedDays: 4,
		},
		{
			name:         "обратный порядок дат дает ту же длительность",
			request:      &SetDatesRequest{StartDate: "2025-07-05", EndDate: "2025-07-01"},
			draft:        &domain.Draft{ID: "d1", Items: []domain.SelectionEntry{}},
			expectedDays: 4,
		},
		{
			name:         "совпадающие даты дают ноль дней",
			request:      &SetDatesRequest{StartDate: "2025-07-01", EndDate: "2025-07-01"},
			draft:        &domain.Draft{ID: "d1", Items: []domain.SelectionEntry{}},
			expectedDays: 0,
		},
		{
			name:          "некорректная дата отклоняется",
			request:       &SetDatesRequest{StartDate: "01/07/2025", EndDate: "2025-07-05"},
			draft:         &domain.Draft{ID: "d1", Items: []domain.SelectionEntry{}},
			expectedError: domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draftRepo := new(MockDraftRepository)
			vehicleRepo := new(MockVehicleRepository)
			settingsRepo := new(MockSettingsRepository)
			stateRepo := new(MockStateRepository)

			draftRepo.On("GetByID", mock.Anything, "d1").Return(tt.draft, nil)
			draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)

			service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
			draft, err := service.SetDates(context.Background(), "d1", tt.request)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDays, draft.Days)
		})
	}
}

// TestDraftService_SetDates_KeepsEntryPrices тестирует, что смена дат не трогает цены позиций
func TestDraftService_SetDates_KeepsEntryPrices(t *testing.T) {
	draftRepo := new(MockDraftRepository)
	vehicleRepo := new(MockVehicleRepository)
	settingsRepo := new(MockSettingsRepository)
	stateRepo := new(MockStateRepository)

	existing := &domain.Draft{
		ID: "d1",
		Items: []domain.SelectionEntry{
			{VehicleID: "v1", PricePerDay: decimal.NewFromInt(69), Season: domain.SeasonHigh},
		},
	}
	draftRepo.On("GetByID", mock.Anything, "d1").Return(existing, nil)
	draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)

	service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
	draft, err := service.SetDates(context.Background(), "d1", &SetDatesRequest{
		StartDate: "2025-02-01",
		EndDate:   "2025-02-10",
	})

	assert.NoError(t, err)
	assert.True(t, draft.Items[0].PricePerDay.Equal(decimal.NewFromInt(69)))
	assert.Equal(t, domain.SeasonHigh, draft.Items[0].Season)
	vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// TestDraftService_ToggleVehicle тестирует выбор и снятие автомобиля
func TestDraftService_ToggleVehicle(t *testing.T) {
	tests := []struct {
		name          string
		draft         *domain.Draft
		mockSetup     func(*MockVehicleRepository, *MockSettingsRepository)
		expectedItems int
		expectedPrice string
		expectedError error
	}{
		{
			name: "добавление в высокий сезон",
			draft: &domain.Draft{
				ID:        "d1",
				StartDate: "2025-07-10",
				EndDate:   "2025-07-15",
				Items:     []domain.SelectionEntry{},
			},
			mockSetup: func(vehicleRepo *MockVehicleRepository, settingsRepo *MockSettingsRepository) {
				vehicleRepo.On("GetByID", mock.Anything, "v1").Return(testVehicle(), nil)
				settingsRepo.On("GetSeasonWindow", mock.Anything).Return(domain.SeasonWindow{
					HighSeasonStart: "2025-06-01",
					HighSeasonEnd:   "2025-08-31",
				}, nil)
			},
			expectedItems: 1,
			expectedPrice: "69",
		},
		{
			name: "без окна сезона берется низкий тариф",
			draft: &domain.Draft{
				ID:        "d1",
				StartDate: "2025-07-10",
				EndDate:   "2025-07-15",
				Items:     []domain.SelectionEntry{},
			},
			mockSetup: func(vehicleRepo *MockVehicleRepository, settingsRepo *MockSettingsRepository) {
				vehicleRepo.On("GetByID", mock.Anything, "v1").Return(testVehicle(), nil)
				settingsRepo.On("GetSeasonWindow", mock.Anything).Return(domain.SeasonWindow{}, nil)
			},
			expectedItems: 1,
			expectedPrice: "62",
		},
		{
			name: "повторный выбор снимает позицию",
			draft: &domain.Draft{
				ID: "d1",
				Items: []domain.SelectionEntry{
					{VehicleID: "v1", PricePerDay: decimal.NewFromInt(62), Season: domain.SeasonLow},
				},
			},
			mockSetup:     func(vehicleRepo *MockVehicleRepository, settingsRepo *MockSettingsRepository) {},
			expectedItems: 0,
		},
		{
			name: "неизвестный автомобиль отклоняется",
			draft: &domain.Draft{
				ID:    "d1",
				Items: []domain.SelectionEntry{},
			},
			mockSetup: func(vehicleRepo *MockVehicleRepository, settingsRepo *MockSettingsRepository) {
				vehicleRepo.On("GetByID", mock.Anything, "v1").Return(nil, domain.ErrVehicleNotFound)
			},
			expectedError: domain.ErrVehicleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draftRepo := new(MockDraftRepository)
			vehicleRepo := new(MockVehicleRepository)
			settingsRepo := new(MockSettingsRepository)
			stateRepo := new(MockStateRepository)

			draftRepo.On("GetByID", mock.Anything, "d1").Return(tt.draft, nil)
			draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)
			tt.mockSetup(vehicleRepo, settingsRepo)

			service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
			draft, err := service.ToggleVehicle(context.Background(), "d1", "v1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, draft.Items, tt.expectedItems)
			if tt.expectedItems > 0 {
				assert.Equal(t, tt.expectedPrice, draft.Items[0].PricePerDay.String())
				assert.False(t, draft.Items[0].ManuallyEdited)
			}
		})
	}
}

// TestDraftService_SetPrice тестирует ручную корректировку цены.
// Значение цены принимается в любом виде и либерально приводится к числу.
func TestDraftService_SetPrice(t *testing.T) {
	tests := []struct {
		name          string
		vehicleID     string
		rawPrice      interface{}
		expectedPrice string
		expectedError error
	}{
		{
			name:          "число меняет цену и помечает ее как ручную",
			vehicleID:     "v1",
			rawPrice:      float64(55),
			expectedPrice: "55",
		},
		{
			name:          "строка с запятой приводится к числу",
			vehicleID:     "v1",
			rawPrice:      "12,5",
			expectedPrice: "12.5",
		},
		{
			name:          "неразборчивое значение деградирует до нуля",
			vehicleID:     "v1",
			rawPrice:      "dos dolares",
			expectedPrice: "0",
		},
		{
			name:          "позиция вне выборки отклоняется",
			vehicleID:     "missing",
			rawPrice:      float64(55),
			expectedError: domain.ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draftRepo := new(MockDraftRepository)
			vehicleRepo := new(MockVehicleRepository)
			settingsRepo := new(MockSettingsRepository)
			stateRepo := new(MockStateRepository)

			existing := &domain.Draft{
				ID: "d1",
				Items: []domain.SelectionEntry{
					{VehicleID: "v1", PricePerDay: decimal.NewFromInt(62), Season: domain.SeasonLow},
				},
			}
			draftRepo.On("GetByID", mock.Anything, "d1").Return(existing, nil)
			draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)

			service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
			draft, err := service.SetPrice(context.Background(), "d1", tt.vehicleID, &SetPriceRequest{
				PricePerDay: tt.rawPrice,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPrice, draft.Items[0].PricePerDay.String())
			assert.True(t, draft.Items[0].ManuallyEdited)
		})
	}
}

// TestDraftService_SetSeason тестирует смену сезона позиции
func TestDraftService_SetSeason(t *testing.T) {
	tests := []struct {
		name           string
		entry          domain.SelectionEntry
		season         string
		mockSetup      func(*MockVehicleRepository)
		expectedPrice  string
		expectedSeason domain.Season
		expectedError  error
	}{
		{
			name: "цена следует за сезоном",
			entry: domain.SelectionEntry{
				VehicleID:   "v1",
				PricePerDay: decimal.NewFromInt(62),
				Season:      domain.SeasonLow,
			},
			season: "high",
			mockSetup: func(vehicleRepo *MockVehicleRepository) {
				vehicleRepo.On("GetByID", mock.Anything, "v1").Return(testVehicle(), nil)
			},
			expectedPrice:  "69",
			expectedSeason: domain.SeasonHigh,
		},
		{
			name: "ручная цена не пересчитывается",
			entry: domain.SelectionEntry{
				VehicleID:      "v1",
				PricePerDay:    decimal.NewFromInt(50),
				Season:         domain.SeasonLow,
				ManuallyEdited: true,
			},
			season:         "high",
			mockSetup:      func(vehicleRepo *MockVehicleRepository) {},
			expectedPrice:  "50",
			expectedSeason: domain.SeasonHigh,
		},
		{
			name:          "неизвестный сезон отклоняется",
			entry:         domain.SelectionEntry{VehicleID: "v1"},
			season:        "spring",
			mockSetup:     func(vehicleRepo *MockVehicleRepository) {},
			expectedError: domain.ErrInvalidSeason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draftRepo := new(MockDraftRepository)
			vehicleRepo := new(MockVehicleRepository)
			settingsRepo := new(MockSettingsRepository)
			stateRepo := new(MockStateRepository)

			existing := &domain.Draft{ID: "d1", Items: []domain.SelectionEntry{tt.entry}}
			draftRepo.On("GetByID", mock.Anything, "d1").Return(existing, nil)
			draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Draft")).Return(nil)
			tt.mockSetup(vehicleRepo)

			service := newTestService(draftRepo, vehicleRepo, settingsRepo, stateRepo)
			draft, err := service.SetSeason(context.Background(), "d1", "v1", &SetSeasonRequest{Season: tt.season})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSeason, draft.Items[0].Season)
			assert.Equal(t, tt.expectedPrice, draft.Items[0].PricePerDay.String())
		})
	}
}
