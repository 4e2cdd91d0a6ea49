package repository

import (
	"context"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleFilter - фильтры списка инвентаря (как в экране подбора)
type VehicleFilter struct {
	Type     string
	Fuel     string
	MinSeats int
	MaxPrice decimal.Decimal // 0 = без ограничения; фильтр по цене низкого сезона
	Search   string
}

// VehicleRepository определяет методы для работы с инвентарем автомобилей
type VehicleRepository interface {
	// Create создает новый автомобиль
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// Update обновляет данные автомобиля
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// Delete удаляет автомобиль (мягкое удаление - is_active = false)
	Delete(ctx context.Context, id string) error

	// List возвращает инвентарь с фильтрами
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, error)

	// Count возвращает число активных автомобилей (для начального наполнения)
	Count(ctx context.Context) (int64, error)
}

// QuoteRepository определяет методы для работы с историей смет.
// История append-only: записи создаются один раз и не мутируют,
// единственное исключение - прикрепление артефактов рендеринга.
type QuoteRepository interface {
	// Create добавляет финализированную смету в историю
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID возвращает смету с позициями
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// List возвращает историю, отсортированную по убыванию даты создания
	List(ctx context.Context, limit, offset int) ([]*domain.Quote, error)

	// UpdateArtifacts прикрепляет перегенерированные артефакты к смете
	UpdateArtifacts(ctx context.Context, id, pdfBase64, imageBase64 string) error

	// Delete удаляет смету из истории (явная очистка истории)
	Delete(ctx context.Context, id string) error
}

// DraftRepository определяет методы для работы с черновиками смет.
// Черновик - короткоживущее состояние сессии подбора.
type DraftRepository interface {
	// Save сохраняет черновик (создание и каждое изменение)
	Save(ctx context.Context, draft *domain.Draft) error

	// GetByID возвращает черновик по ID
	GetByID(ctx context.Context, id string) (*domain.Draft, error)

	// Delete удаляет черновик (после финализации или отмены)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository определяет методы для работы с конфигурацией:
// окно высокого сезона и логотип компании
type SettingsRepository interface {
	// GetSeasonWindow возвращает окно высокого сезона (пустое, если не задано)
	GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error)

	// SetSeasonWindow сохраняет окно высокого сезона
	SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error

	// GetLogo возвращает логотип компании как base64 (пустая строка, если не задан)
	GetLogo(ctx context.Context) (string, error)

	// SetLogo сохраняет логотип компании
	SetLogo(ctx context.Context, logoBase64 string) error
}

// StateRepository определяет методы для работы с состоянием процесса,
// переживающим сессии: счетчик номеров брони, последнее имя клиента,
// флаг выполняющейся финализации
type StateRepository interface {
	// PeekReservationCounter возвращает текущее значение счетчика БЕЗ продвижения
	// (черновик показывает следующий номер до подтверждения). Отсутствие ключа = 1.
	PeekReservationCounter(ctx context.Context) (int64, error)

	// AdvanceReservationCounter увеличивает счетчик на единицу.
	// Вызывается только после успешной финализации и сохранения сметы.
	AdvanceReservationCounter(ctx context.Context) (int64, error)

	// LastClientName возвращает последнее использованное имя клиента
	LastClientName(ctx context.Context) (string, error)

	// SetLastClientName сохраняет последнее имя клиента
	SetLastClientName(ctx context.Context, name string) error

	// AcquireFinalizeLock ставит флаг выполняющейся финализации черновика.
	// Возвращает false, если финализация уже идет.
	AcquireFinalizeLock(ctx context.Context, draftID string) (bool, error)

	// ReleaseFinalizeLock снимает флаг финализации
	ReleaseFinalizeLock(ctx context.Context, draftID string) error
}

// MediaRepository определяет методы для работы с галереей автомобилей
type MediaRepository interface {
	// Create сохраняет элемент галереи
	Create(ctx context.Context, media *domain.Media) error

	// GetByID возвращает элемент галереи по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)

	// GetByVehicleID возвращает галерею автомобиля
	GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Media, error)

	// Delete удаляет элемент галереи
	Delete(ctx context.Context, id uuid.UUID) error
}
