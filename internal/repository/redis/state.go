package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/frontandrew/rental/internal/pkg/redis"
	"github.com/frontandrew/rental/internal/repository"
	redisv9 "github.com/redis/go-redis/v9"
)

// Ключи состояния процесса в key-value хранилище
const (
	reservationCounterKey = "rental:reservation_counter"
	lastClientNameKey     = "rental:last_client"
	finalizeLockPrefix    = "rental:finalize:"

	// Флаг финализации живет недолго: это защита от двойного клика,
	// а не распределенная блокировка
	finalizeLockTTL = 30 * time.Second
)

// keyValue покрывает команды хранилища, которыми пользуется репозиторий
type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys ...string) error
}

// StateRepository хранит состояние, переживающее сессии: счетчик номеров
// брони и последнее имя клиента. Запись fire-and-forget, транзакционной
// связи с финализацией сметы нет - при падении между сохранением сметы
// и продвижением счетчик отстает на единицу, это принятый дрейф.
type StateRepository struct {
	cache keyValue
}

// NewStateRepository создает новый репозиторий состояния
func NewStateRepository(cache *redis.Client) repository.StateRepository {
	return &StateRepository{cache: cache}
}

// PeekReservationCounter возвращает текущее значение счетчика без продвижения.
// Отсутствующий ключ означает свежий инсталл: счетчик начинается с 1.
func (r *StateRepository) PeekReservationCounter(ctx context.Context) (int64, error) {
	value, err := r.cache.Get(ctx, reservationCounterKey)
	if err != nil {
		if errors.Is(err, redisv9.Nil) {
			return 1, nil
		}
		return 0, err
	}

	counter, err := strconv.ParseInt(value, 10, 64)
	if err != nil || counter < 1 {
		// Испорченное значение деградирует до начального
		return 1, nil
	}

	return counter, nil
}

// AdvanceReservationCounter увеличивает счетчик на единицу.
// Для отсутствующего ключа сначала материализуется начальное значение 1:
// голый INCR дал бы 1 вместо ожидаемых 2.
func (r *StateRepository) AdvanceReservationCounter(ctx context.Context) (int64, error) {
	if _, err := r.cache.SetNX(ctx, reservationCounterKey, "1", 0); err != nil {
		return 0, err
	}
	return r.cache.Incr(ctx, reservationCounterKey)
}

// LastClientName возвращает последнее использованное имя клиента
func (r *StateRepository) LastClientName(ctx context.Context) (string, error) {
	value, err := r.cache.Get(ctx, lastClientNameKey)
	if err != nil {
		if errors.Is(err, redisv9.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetLastClientName сохраняет последнее имя клиента
func (r *StateRepository) SetLastClientName(ctx context.Context, name string) error {
	return r.cache.Set(ctx, lastClientNameKey, name, 0)
}

// AcquireFinalizeLock ставит флаг выполняющейся финализации черновика
func (r *StateRepository) AcquireFinalizeLock(ctx context.Context, draftID string) (bool, error) {
	return r.cache.SetNX(ctx, finalizeLockPrefix+draftID, "1", finalizeLockTTL)
}

// ReleaseFinalizeLock снимает флаг финализации
func (r *StateRepository) ReleaseFinalizeLock(ctx context.Context, draftID string) error {
	return r.cache.Del(ctx, finalizeLockPrefix+draftID)
}
