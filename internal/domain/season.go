package domain

import (
	"fmt"
	"math"
	"time"
)

// Season - ценовой сезон проката
type Season string

const (
	SeasonHigh Season = "high"
	SeasonLow  Season = "low"
)

// ParseSeason проверяет и приводит строковое значение сезона
func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case SeasonHigh, SeasonLow:
		return Season(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}
}

// DateLayout - формат календарных дат во всем приложении (даты без времени)
const DateLayout = "2006-01-02"

// ParseDate парсит календарную дату в полночь UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// SeasonWindow - настроенное окно высокого сезона.
// Пустая граница означает, что окно не задано и классификация
// всегда возвращает низкий сезон.
type SeasonWindow struct {
	HighSeasonStart string `json:"highSeasonStart"`
	HighSeasonEnd   string `json:"highSeasonEnd"`
}

// IsSet сообщает, заданы ли обе границы окна
func (w SeasonWindow) IsSet() bool {
	return w.HighSeasonStart != "" && w.HighSeasonEnd != ""
}

// Validate проверяет, что заданные границы парсятся как даты.
// Пустое окно валидно.
func (w SeasonWindow) Validate() error {
	if w.HighSeasonStart == "" && w.HighSeasonEnd == "" {
		return nil
	}
	if _, err := ParseDate(w.HighSeasonStart); err != nil {
		return err
	}
	if _, err := ParseDate(w.HighSeasonEnd); err != nil {
		return err
	}
	return nil
}

// ClassifySeason классифицирует период проката относительно окна высокого сезона.
// Высокий сезон - если НАЧАЛО или КОНЕЦ периода попадает в закрытый интервал
// [start, end] окна. Это проверка попадания концов, а НЕ пересечения интервалов:
// период, целиком накрывающий окно (оба конца снаружи), классифицируется как
// низкий сезон.
func ClassifySeason(stayStart, stayEnd time.Time, w SeasonWindow) Season {
	if !w.IsSet() {
		return SeasonLow
	}

	windowStart, err := ParseDate(w.HighSeasonStart)
	if err != nil {
		return SeasonLow
	}
	windowEnd, err := ParseDate(w.HighSeasonEnd)
	if err != nil {
		return SeasonLow
	}

	if inClosedInterval(stayStart, windowStart, windowEnd) ||
		inClosedInterval(stayEnd, windowStart, windowEnd) {
		return SeasonHigh
	}
	return SeasonLow
}

func inClosedInterval(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// RentalDays считает целое число суток проката: ceil(|end - start| / 24h).
// Модуль разницы означает, что перепутанный порядок дат дает тот же результат,
// что и правильный - без ошибки. Совпадающие даты дают 0 дней; прокат на
// 0 дней допускается и дает нулевые суммы.
func RentalDays(start, end time.Time) int {
	diff := end.Sub(start).Hours()
	return int(math.Ceil(math.Abs(diff) / 24))
}

// FormatReservationNumber форматирует счетчик брони в человекочитаемый
// номер фиксированной ширины: 7 -> "#0007"
func FormatReservationNumber(counter int64) string {
	return fmt.Sprintf("#%04d", counter)
}
