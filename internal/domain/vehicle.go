package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle - автомобиль инвентаря в каноничной форме.
// Ценовые поля ВСЕГДА числовые, инвариант HighSeasonPrice >= LowSeasonPrice
// гарантируется нормализацией (NormalizeVehicle).
type Vehicle struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type,omitempty"`
	Fuel            string           `json:"fuel,omitempty"`
	Seats           *int             `json:"seats,omitempty"`
	Deposit         *decimal.Decimal `json:"deposit,omitempty"`
	LowSeasonPrice  decimal.Decimal  `json:"lowSeasonPrice"`
	HighSeasonPrice decimal.Decimal  `json:"highSeasonPrice"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// RateFor возвращает тариф автомобиля для указанного сезона
func (v *Vehicle) RateFor(season Season) decimal.Decimal {
	if season == SeasonHigh {
		return v.HighSeasonPrice
	}
	return v.LowSeasonPrice
}

// Validate проверяет каноничную запись перед сохранением.
// Нормализация либеральна, но в каталог не должны попадать
// отрицательные цены и нарушенный сезонный инвариант.
func (v *Vehicle) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidVehicleData)
	}
	if v.LowSeasonPrice.IsNegative() || v.HighSeasonPrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidVehicleData)
	}
	if v.HighSeasonPrice.LessThan(v.LowSeasonPrice) {
		return fmt.Errorf("%w: high season price is below low season price", ErrInvalidVehicleData)
	}
	if v.Deposit != nil && v.Deposit.IsNegative() {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidVehicleData)
	}
	return nil
}

// DefaultVehicleName - имя-заглушка, если исходная запись не содержит имени
const DefaultVehicleName = "Vehículo"

// NormalizeVehicle приводит "сырую" запись инвентаря к каноничной форме.
// Редактор инвентаря не гарантирует схему: поля могут приходить под разными
// именами (в том числе испанскими - наследие исходных данных), цены - строками
// с запятой вместо точки. Функция чистая и НИКОГДА не возвращает ошибку:
// любой мусор деградирует до значений по умолчанию.
func NormalizeVehicle(raw map[string]interface{}) *Vehicle {
	// Низкий сезон: первый распарсившийся алиас из списка приоритетов.
	// Единое поле price трактуется как цена для обоих сезонов.
	low := firstDecimal(raw, "lowSeasonPrice", "priceLow", "precioBaja", "price", "pricePerDay")

	// Высокий сезон: если алиасов нет - используем цену низкого сезона
	high := firstDecimal(raw, "highSeasonPrice", "priceHigh", "precioAlta")
	if high.IsZero() {
		high = low
	}

	// Инвариант каноничной формы: высокий сезон не дешевле низкого
	if high.LessThan(low) {
		high = low
	}

	v := &Vehicle{
		ID:              firstString(raw, "id", "_id"),
		Name:            firstString(raw, "name", "modelo", "title"),
		Type:            firstString(raw, "type", "tipo", "category"),
		Fuel:            firstString(raw, "fuel", "combustible"),
		Seats:           firstSeats(raw, "seats", "plazas"),
		Deposit:         optionalDecimal(raw, "deposit", "deposito"),
		LowSeasonPrice:  low,
		HighSeasonPrice: high,
		IsActive:        true,
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Name == "" {
		v.Name = DefaultVehicleName
	}

	return v
}

// ToDecimal приводит произвольное скалярное значение к decimal.
// Строки могут содержать запятую как десятичный разделитель.
// Нераспарсившееся значение деградирует до нуля - таков общий
// либеральный контракт нормализации.
func ToDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// firstDecimal пробует алиасы по порядку и возвращает первое ненулевое значение
func firstDecimal(raw map[string]interface{}, aliases ...string) decimal.Decimal {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			if d := ToDecimal(v); !d.IsZero() {
				return d
			}
		}
	}
	return decimal.Zero
}

// optionalDecimal отличается от firstDecimal тем, что отсутствие поля - это
// валидное состояние (nil), а не ноль
func optionalDecimal(raw map[string]interface{}, aliases ...string) *decimal.Decimal {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			d := ToDecimal(v)
			return &d
		}
	}
	return nil
}

func firstString(raw map[string]interface{}, aliases ...string) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		case float64:
			// Числовые id из JSON приходят как float64
			return strconv.FormatFloat(s, 'f', -1, 64)
		case json.Number:
			return s.String()
		}
	}
	return ""
}

// firstSeats парсит число мест: положительное целое либо отсутствует
func firstSeats(raw map[string]interface{}, aliases ...string) *int {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		d := ToDecimal(v)
		if !d.IsInteger() || d.IsZero() || d.IsNegative() {
			continue
		}
		n := int(d.IntPart())
		return &n
	}
	return nil
}
