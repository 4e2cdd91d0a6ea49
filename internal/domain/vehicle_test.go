package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestNormalizeVehicle тестирует приведение "сырых" записей инвентаря к каноничной форме
func TestNormalizeVehicle(t *testing.T) {
	tests := []struct {
		name         string
		raw          map[string]interface{}
		expectedLow  string
		expectedHigh string
		check        func(*testing.T, *Vehicle)
	}{
		{
			name: "каноничная запись",
			raw: map[string]interface{}{
				"id":              "7",
				"name":            "Volkswagen Tiguan",
				"type":            "Suv",
				"fuel":            "Gasolina",
				"lowSeasonPrice":  float64(72),
				"highSeasonPrice": float64(82),
			},
			expectedLow:  "72",
			expectedHigh: "82",
			check: func(t *testing.T, v *Vehicle) {
				assert.Equal(t, "7", v.ID)
				assert.Equal(t, "Volkswagen Tiguan", v.Name)
				assert.Equal(t, "Suv", v.Type)
			},
		},
		{
			name: "альтернативные имена полей",
			raw: map[string]interface{}{
				"_id":        "abc",
				"modelo":     "Toyota Camry",
				"tipo":       "Sedan",
				"precioBaja": float64(62),
				"precioAlta": float64(69),
			},
			expectedLow:  "62",
			expectedHigh: "69",
			check: func(t *testing.T, v *Vehicle) {
				assert.Equal(t, "abc", v.ID)
				assert.Equal(t, "Toyota Camry", v.Name)
				assert.Equal(t, "Sedan", v.Type)
			},
		},
		{
			name: "единая цена трактуется как оба сезона",
			raw: map[string]interface{}{
				"name":  "New Beetle",
				"price": float64(56),
			},
			expectedLow:  "56",
			expectedHigh: "56",
		},
		{
			name: "цена строкой с запятой",
			raw: map[string]interface{}{
				"name":           "Tesla Model 3",
				"lowSeasonPrice": "75,50",
				"priceHigh":      "87,00",
			},
			expectedLow:  "75.5",
			expectedHigh: "87",
		},
		{
			name: "высокий сезон дешевле низкого - прижимается вверх",
			raw: map[string]interface{}{
				"name":            "BMW X3",
				"lowSeasonPrice":  float64(82),
				"highSeasonPrice": float64(72),
			},
			expectedLow:  "82",
			expectedHigh: "82",
		},
		{
			name: "мусорные цены деградируют до нуля",
			raw: map[string]interface{}{
				"name":            "Mazda CX-5",
				"lowSeasonPrice":  "no-price",
				"highSeasonPrice": "also-bad",
			},
			expectedLow:  "0",
			expectedHigh: "0",
		},
		{
			name:         "пустая запись получает id и имя-заглушку",
			raw:          map[string]interface{}{},
			expectedLow:  "0",
			expectedHigh: "0",
			check: func(t *testing.T, v *Vehicle) {
				assert.NotEmpty(t, v.ID)
				assert.Equal(t, DefaultVehicleName, v.Name)
			},
		},
		{
			name: "места по алиасу plazas",
			raw: map[string]interface{}{
				"name":   "Kia Carnival",
				"plazas": float64(8),
				"price":  float64(95),
			},
			expectedLow:  "95",
			expectedHigh: "95",
			check: func(t *testing.T, v *Vehicle) {
				if assert.NotNil(t, v.Seats) {
					assert.Equal(t, 8, *v.Seats)
				}
			},
		},
		{
			name: "невалидные места отсутствуют, а не ошибка",
			raw: map[string]interface{}{
				"name":  "Porsche Boxter",
				"seats": "dos",
				"price": float64(220),
			},
			expectedLow:  "220",
			expectedHigh: "220",
			check: func(t *testing.T, v *Vehicle) {
				assert.Nil(t, v.Seats)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NormalizeVehicle(tt.raw)

			assert.True(t, v.LowSeasonPrice.Equal(decimal.RequireFromString(tt.expectedLow)),
				"low: ожидалось %s, получено %s", tt.expectedLow, v.LowSeasonPrice)
			assert.True(t, v.HighSeasonPrice.Equal(decimal.RequireFromString(tt.expectedHigh)),
				"high: ожидалось %s, получено %s", tt.expectedHigh, v.HighSeasonPrice)

			// Инвариант нормализации: high >= low >= 0
			assert.True(t, v.HighSeasonPrice.GreaterThanOrEqual(v.LowSeasonPrice))
			assert.False(t, v.LowSeasonPrice.IsNegative())

			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

// TestToDecimal тестирует либеральное приведение скаляров к decimal
func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"число float64", float64(72.5), "72.5"},
		{"целое", 60, "60"},
		{"строка с точкой", "85.25", "85.25"},
		{"строка с запятой", "85,25", "85.25"},
		{"строка с пробелами", "  90 ", "90"},
		{"пустая строка", "", "0"},
		{"мусор", "abc", "0"},
		{"nil", nil, "0"},
		{"bool деградирует до нуля", true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.input)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"ожидалось %s, получено %s", tt.expected, got)
		})
	}
}

// TestVehicleRateFor тестирует выбор тарифа по сезону
func TestVehicleRateFor(t *testing.T) {
	v := &Vehicle{
		LowSeasonPrice:  decimal.NewFromInt(60),
		HighSeasonPrice: decimal.NewFromInt(72),
	}

	assert.True(t, v.RateFor(SeasonLow).Equal(decimal.NewFromInt(60)))
	assert.True(t, v.RateFor(SeasonHigh).Equal(decimal.NewFromInt(72)))
}
