package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/redis"
	"github.com/frontandrew/rental/internal/repository"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix = "rental:draft:"

	// Черновик - состояние одной рабочей сессии; брошенные черновики
	// вычищаются по TTL
	draftTTL = 24 * time.Hour
)

// DraftRepository хранит черновики смет как JSON blob'ы в key-value
// хранилище: HTTP-слой остается stateless, а черновик переживает
// перезапуск процесса
type DraftRepository struct {
	cache *redis.Client
}

// NewDraftRepository создает новый репозиторий черновиков
func NewDraftRepository(cache *redis.Client) repository.DraftRepository {
	return &DraftRepository{cache: cache}
}

// Save сохраняет черновик, обновляя TTL при каждом изменении
func (r *DraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	draft.UpdatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	return r.cache.Set(ctx, draftKeyPrefix+draft.ID, string(data), draftTTL)
}

// GetByID возвращает черновик по ID
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	data, err := r.cache.Get(ctx, draftKeyPrefix+id)
	if err != nil {
		if errors.Is(err, redisv9.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	draft := &domain.Draft{}
	if err := json.Unmarshal([]byte(data), draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return draft, nil
}

// Delete удаляет черновик
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Del(ctx, draftKeyPrefix+id)
}
