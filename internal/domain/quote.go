package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SelectionEntry - один выбранный автомобиль в черновике.
// Пока ManuallyEdited=false, PricePerDay равна табличному тарифу автомобиля
// для Season. После ручного редактирования цены запись навсегда выходит
// из-под автоматического перерасчета (до удаления из выборки).
type SelectionEntry struct {
	VehicleID      string          `json:"vehicleId"`
	VehicleName    string          `json:"vehicleName"`
	VehicleType    string          `json:"vehicleType,omitempty"`
	VehicleFuel    string          `json:"vehicleFuel,omitempty"`
	PricePerDay    decimal.Decimal `json:"pricePerDay"`
	Season         Season          `json:"season"`
	ManuallyEdited bool            `json:"manuallyEdited"`
}

// Draft - черновик сметы, изменяемое состояние текущей сессии подбора.
// Записи выборки хранятся упорядоченным срезом: порядок выбора служит
// стабильным tie-break'ом при финальной сортировке позиций.
type Draft struct {
	ID                string           `json:"id"`
	ClientName        string           `json:"clientName"`
	ReservationNumber string           `json:"reservationNumber"`
	StartDate         string           `json:"startDate"`
	EndDate           string           `json:"endDate"`
	Days              int              `json:"days"`
	Items             []SelectionEntry `json:"items"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Entry возвращает запись выборки по id автомобиля и ее индекс (-1 если нет)
func (d *Draft) Entry(vehicleID string) (*SelectionEntry, int) {
	for i := range d.Items {
		if d.Items[i].VehicleID == vehicleID {
			return &d.Items[i], i
		}
	}
	return nil, -1
}

// RemoveEntry удаляет запись выборки, сохраняя порядок остальных
func (d *Draft) RemoveEntry(index int) {
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
}

// Validate проверяет готовность черновика к финализации.
// Все ошибки обернуты в ErrValidation: обработчик отдает их клиенту
// одним классом как блокирующее сообщение.
func (d *Draft) Validate() error {
	if d.ClientName == "" {
		return fmt.Errorf("%w: %s", ErrValidation, ErrClientNameRequired)
	}
	if d.ReservationNumber == "" {
		return fmt.Errorf("%w: %s", ErrValidation, ErrReservationNumberRequired)
	}
	if d.StartDate == "" || d.EndDate == "" {
		return fmt.Errorf("%w: %s", ErrValidation, ErrDatesRequired)
	}
	if _, err := ParseDate(d.StartDate); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if _, err := ParseDate(d.EndDate); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrValidation, ErrEmptySelection)
	}
	return nil
}

// QuoteItem - позиция финализированной сметы
type QuoteItem struct {
	VehicleID      string          `json:"vehicleId"`
	VehicleName    string          `json:"vehicleName"`
	VehicleType    string          `json:"vehicleType,omitempty"`
	VehicleFuel    string          `json:"vehicleFuel,omitempty"`
	PricePerDay    decimal.Decimal `json:"pricePerDay"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	Season         Season          `json:"season"`
	ManuallyEdited bool            `json:"manuallyEdited"`
}

// Quote - неизменяемая историческая запись сметы.
// Инварианты: Total = сумма LineTotal всех позиций; Items отсортированы
// по возрастанию PricePerDay (при равенстве - порядок выбора).
// После создания запись никогда не мутирует (кроме прикрепления
// артефактов рендеринга, см. QuoteRepository.UpdateArtifacts).
type Quote struct {
	ID                string          `json:"id"`
	ReservationNumber string          `json:"reservationNumber"`
	ClientName        string          `json:"clientName"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Days              int             `json:"days"`
	Items             []QuoteItem     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	PDFBase64         string          `json:"pdfBase64,omitempty"`
	ImageBase64       string          `json:"imageBase64,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// BuildQuote собирает снимок сметы из валидного черновика.
// Функция детерминирована: id и момент создания передаются снаружи.
// Черновик ДОЛЖЕН пройти Validate до вызова.
func BuildQuote(d *Draft, id string, now time.Time) *Quote {
	start, _ := ParseDate(d.StartDate)
	end, _ := ParseDate(d.EndDate)
	days := RentalDays(start, end)

	items := make([]QuoteItem, 0, len(d.Items))
	for _, entry := range d.Items {
		items = append(items, QuoteItem{
			VehicleID:      entry.VehicleID,
			VehicleName:    entry.VehicleName,
			VehicleType:    entry.VehicleType,
			VehicleFuel:    entry.VehicleFuel,
			PricePerDay:    entry.PricePerDay,
			LineTotal:      entry.PricePerDay.Mul(decimal.NewFromInt(int64(days))),
			Season:         entry.Season,
			ManuallyEdited: entry.ManuallyEdited,
		})
	}

	// Канонический порядок: по возрастанию цены за день, при равенстве
	// стабильная сортировка сохраняет порядок выбора
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PricePerDay.LessThan(items[j].PricePerDay)
	})

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}

	return &Quote{
		ID:                id,
		ReservationNumber: d.ReservationNumber,
		ClientName:        d.ClientName,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		Days:              days,
		Items:             items,
		Total:             total,
		CreatedAt:         now,
	}
}
