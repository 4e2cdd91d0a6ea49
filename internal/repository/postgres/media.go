package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mediaRepository struct {
	db *pgxpool.Pool
}

func NewMediaRepository(db *pgxpool.Pool) repository.MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	query := `
		INSERT INTO vehicle_media (id, vehicle_id, file_name, content_type, data_base64, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	media.ID = uuid.New()
	media.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		media.ID,
		media.VehicleID,
		media.FileName,
		media.ContentType,
		media.DataBase64,
		media.CreatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	query := `
		SELECT id, vehicle_id, file_name, content_type, data_base64, created_at
		FROM vehicle_media
		WHERE id = $1
	`

	media := &domain.Media{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&media.ID,
		&media.VehicleID,
		&media.FileName,
		&media.ContentType,
		&media.DataBase64,
		&media.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}

	return media, nil
}

func (r *mediaRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Media, error) {
	query := `
		SELECT id, vehicle_id, file_name, content_type, data_base64, created_at
		FROM vehicle_media
		WHERE vehicle_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Media{}
	for rows.Next() {
		media := &domain.Media{}
		err := rows.Scan(
			&media.ID,
			&media.VehicleID,
			&media.FileName,
			&media.ContentType,
			&media.DataBase64,
			&media.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, media)
	}

	return items, rows.Err()
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicle_media WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}

	return nil
}
