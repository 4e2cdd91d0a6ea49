package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Таблицы приложения. Схема создается на старте идемпотентно:
// отдельного механизма миграций у однопользовательского инсталла нет.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicles (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		type              TEXT NOT NULL DEFAULT '',
		fuel              TEXT NOT NULL DEFAULT '',
		seats             INT,
		deposit           NUMERIC,
		low_season_price  NUMERIC NOT NULL DEFAULT 0,
		high_season_price NUMERIC NOT NULL DEFAULT 0,
		is_active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id                 TEXT PRIMARY KEY,
		reservation_number TEXT NOT NULL,
		client_name        TEXT NOT NULL,
		start_date         TEXT NOT NULL,
		end_date           TEXT NOT NULL,
		days               INT NOT NULL,
		total              NUMERIC NOT NULL,
		pdf_base64         TEXT NOT NULL DEFAULT '',
		image_base64       TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quote_items (
		quote_id        TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		position        INT NOT NULL,
		vehicle_id      TEXT NOT NULL,
		vehicle_name    TEXT NOT NULL,
		vehicle_type    TEXT NOT NULL DEFAULT '',
		vehicle_fuel    TEXT NOT NULL DEFAULT '',
		price_per_day   NUMERIC NOT NULL,
		line_total      NUMERIC NOT NULL,
		season          TEXT NOT NULL,
		manually_edited BOOLEAN NOT NULL,
		PRIMARY KEY (quote_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS vehicle_media (
		id           UUID PRIMARY KEY,
		vehicle_id   TEXT NOT NULL,
		file_name    TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT '',
		data_base64  TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_media_vehicle_id ON vehicle_media(vehicle_id)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC)`,
}

// EnsureSchema создает таблицы приложения, если их еще нет
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
