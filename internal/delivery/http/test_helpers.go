package http

import (
	"testing"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateTestVehicle создает тестовый автомобиль каталога
func CreateTestVehicle(id, name string, low, high int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:              id,
		Name:            name,
		Type:            "Suv",
		Fuel:            "Gasolina",
		LowSeasonPrice:  decimal.NewFromInt(low),
		HighSeasonPrice: decimal.NewFromInt(high),
		IsActive:        true,
	}
}

// CreateTestDraft создает тестовый черновик с одной позицией
func CreateTestDraft(id string) *domain.Draft {
	return &domain.Draft{
		ID:                id,
		ClientName:        "Maria",
		ReservationNumber: "#0007",
		StartDate:         "2025-07-01",
		EndDate:           "2025-07-04",
		Days:              3,
		Items: []domain.SelectionEntry{
			{
				VehicleID:   "v1",
				VehicleName: "Mazda CX-5",
				PricePerDay: decimal.NewFromInt(60),
				Season:      domain.SeasonLow,
			},
		},
	}
}

// CreateTestQuote создает тестовую смету
func CreateTestQuote(id, reservationNumber string) *domain.Quote {
	return &domain.Quote{
		ID:                id,
		ReservationNumber: reservationNumber,
		ClientName:        "Maria",
		StartDate:         "2025-07-01",
		EndDate:           "2025-07-04",
		Days:              3,
		Items: []domain.QuoteItem{
			{
				VehicleID:   "v1",
				VehicleName: "Mazda CX-5",
				PricePerDay: decimal.NewFromInt(60),
				LineTotal:   decimal.NewFromInt(180),
				Season:      domain.SeasonLow,
			},
		},
		Total: decimal.NewFromInt(180),
	}
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	_, hasError := response["error"]
	if !hasError {
		t.Errorf("Expected error in response, got %v", response)
	}
}
