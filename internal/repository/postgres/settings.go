package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ключи таблицы settings
const (
	settingSeasonStart = "high_season_start"
	settingSeasonEnd   = "high_season_end"
	settingLogo        = "company_logo"
)

type settingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSeasonWindow(ctx context.Context) (domain.SeasonWindow, error) {
	start, err := r.getValue(ctx, settingSeasonStart)
	if err != nil {
		return domain.SeasonWindow{}, err
	}
	end, err := r.getValue(ctx, settingSeasonEnd)
	if err != nil {
		return domain.SeasonWindow{}, err
	}

	return domain.SeasonWindow{
		HighSeasonStart: start,
		HighSeasonEnd:   end,
	}, nil
}

func (r *settingsRepository) SetSeasonWindow(ctx context.Context, window domain.SeasonWindow) error {
	if err := r.setValue(ctx, settingSeasonStart, window.HighSeasonStart); err != nil {
		return err
	}
	return r.setValue(ctx, settingSeasonEnd, window.HighSeasonEnd)
}

func (r *settingsRepository) GetLogo(ctx context.Context) (string, error) {
	return r.getValue(ctx, settingLogo)
}

func (r *settingsRepository) SetLogo(ctx context.Context, logoBase64 string) error {
	return r.setValue(ctx, settingLogo, logoBase64)
}

// getValue возвращает значение настройки; отсутствующий ключ - пустая строка
func (r *settingsRepository) getValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *settingsRepository) setValue(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.Exec(ctx, query, key, value)
	return err
}
