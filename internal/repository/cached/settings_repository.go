package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/redis"
	"github.com/frontandrew/rental/internal/repository"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	seasonWindowCacheKey = "rental:cache:season_window"
	seasonWindowCacheTTL = 5 * time.Minute
)

// SettingsRepository добавляет кэширование окна сезона к settings repository.
// Окно читается при каждом добавлении автомобиля в черновик, поэтому
// держим его в кэше; логотип читается только при рендеринге и не кэшируется.
type SettingsRepository struct {
	repo  repository.SettingsRepository
	cache *redis.Client
}

// NewSettingsRepository создает новый кэшируемый settings repository
func NewSettingsRepository(repo repository.SettingsRepository, cache *redis.Client) *SettingsRepository {
	return &SettingsRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetSeasonWindow возвращает окно высокого сезона (с кэшированием)
func (r *SettingsRepository) GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error) {
	// 1. Проверяем кэш
	cachedValue, err := r.cache.Get(ctx, seasonWindowCacheKey)
	if err == nil {
		window := domain.SeasonWindow{}
		if jsonErr := json.Unmarshal([]byte(cachedValue), &window); jsonErr == nil {
			return window, nil
		}
		// Испорченный кэш игнорируем и идем в БД
	} else if err != redisv9.Nil {
		// Ошибка кэша не критична - продолжаем работу с БД
	}

	// 2. Cache miss - идем в БД
	window, err := r.repo.GetSeasonWindow(ctx)
	if err != nil {
		return domain.SeasonWindow{}, err
	}

	// 3. Сохраняем результат в кэш (ошибка записи не критична)
	if data, jsonErr := json.Marshal(window); jsonErr == nil {
		_ = r.cache.Set(ctx, seasonWindowCacheKey, string(data), seasonWindowCacheTTL)
	}

	return window, nil
}

// SetSeasonWindow сохраняет окно и инвалидирует кэш
func (r *SettingsRepository) SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error {
	if err := r.repo.SetSeasonWindow(ctx, window); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, seasonWindowCacheKey)

	return nil
}

// GetLogo возвращает логотип компании (без кэширования)
func (r *SettingsRepository) GetLogo(ctx context.Context) (string, error) {
	return r.repo.GetLogo(ctx)
}

// SetLogo сохраняет логотип компании
func (r *SettingsRepository) SetLogo(ctx context.Context, logoBase64 string) error {
	return r.repo.SetLogo(ctx, logoBase64)
}
