package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// fakeKeyValue - строковое хранилище в памяти с семантикой команд redis:
// отсутствующий ключ дает redis.Nil, SETNX пишет только в пустой ключ,
// INCR отсутствующего ключа дает 1
type fakeKeyValue struct {
	values map[string]string
}

func newFakeKeyValue() *fakeKeyValue {
	return &fakeKeyValue{values: map[string]string{}}
}

func (f *fakeKeyValue) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redisv9.Nil
	}
	return value, nil
}

func (f *fakeKeyValue) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeKeyValue) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeKeyValue) Incr(_ context.Context, key string) (int64, error) {
	current, _ := strconv.ParseInt(f.values[key], 10, 64)
	current++
	f.values[key] = strconv.FormatInt(current, 10)
	return current, nil
}

func (f *fakeKeyValue) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

// TestStateRepository_ReservationCounter тестирует контракт счетчика номеров брони
func TestStateRepository_ReservationCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("просмотр не продвигает счетчик", func(t *testing.T) {
		repo := &StateRepository{cache: newFakeKeyValue()}

		first, err := repo.PeekReservationCounter(ctx)
		assert.NoError(t, err)
		second, err := repo.PeekReservationCounter(ctx)
		assert.NoError(t, err)

		assert.Equal(t, int64(1), first)
		assert.Equal(t, first, second)
	})

	t.Run("первое продвижение свежего счетчика дает два", func(t *testing.T) {
		repo := &StateRepository{cache: newFakeKeyValue()}

		advanced, err := repo.AdvanceReservationCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), advanced)

		peeked, err := repo.PeekReservationCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), peeked)
	})

	t.Run("каждое продвижение увеличивает на единицу", func(t *testing.T) {
		repo := &StateRepository{cache: newFakeKeyValue()}

		_, err := repo.AdvanceReservationCounter(ctx)
		assert.NoError(t, err)
		advanced, err := repo.AdvanceReservationCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), advanced)

		peeked, err := repo.PeekReservationCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), peeked)
	})

	t.Run("испорченное значение деградирует до начального", func(t *testing.T) {
		kv := newFakeKeyValue()
		kv.values[reservationCounterKey] = "garbage"
		repo := &StateRepository{cache: kv}

		peeked, err := repo.PeekReservationCounter(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), peeked)
	})
}

// TestStateRepository_LastClientName тестирует память последнего клиента
func TestStateRepository_LastClientName(t *testing.T) {
	ctx := context.Background()
	repo := &StateRepository{cache: newFakeKeyValue()}

	name, err := repo.LastClientName(ctx)
	assert.NoError(t, err)
	assert.Empty(t, name)

	assert.NoError(t, repo.SetLastClientName(ctx, "Maria"))

	name, err = repo.LastClientName(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Maria", name)
}

// TestStateRepository_FinalizeLock тестирует флаг выполняющейся финализации
func TestStateRepository_FinalizeLock(t *testing.T) {
	ctx := context.Background()
	repo := &StateRepository{cache: newFakeKeyValue()}

	acquired, err := repo.AcquireFinalizeLock(ctx, "d1")
	assert.NoError(t, err)
	assert.True(t, acquired)

	// Повторный захват того же черновика отклоняется
	acquired, err = repo.AcquireFinalizeLock(ctx, "d1")
	assert.NoError(t, err)
	assert.False(t, acquired)

	// Другой черновик блокируется независимо
	acquired, err = repo.AcquireFinalizeLock(ctx, "d2")
	assert.NoError(t, err)
	assert.True(t, acquired)

	assert.NoError(t, repo.ReleaseFinalizeLock(ctx, "d1"))

	acquired, err = repo.AcquireFinalizeLock(ctx, "d1")
	assert.NoError(t, err)
	assert.True(t, acquired)
}
