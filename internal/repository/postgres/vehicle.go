package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, type, fuel, seats, deposit, low_season_price, high_season_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.Fuel,
		vehicle.Seats,
		depositValue(vehicle.Deposit),
		vehicle.LowSeasonPrice,
		vehicle.HighSeasonPrice,
		vehicle.IsActive,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		return err
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, fuel, seats, deposit, low_season_price, high_season_price, is_active, created_at, updated_at
		FROM vehicles
		WHERE id = $1 AND is_active = TRUE
	`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, type = $3, fuel = $4, seats = $5, deposit = $6,
		    low_season_price = $7, high_season_price = $8, updated_at = $9
		WHERE id = $1 AND is_active = TRUE
	`

	vehicle.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.Fuel,
		vehicle.Seats,
		depositValue(vehicle.Deposit),
		vehicle.LowSeasonPrice,
		vehicle.HighSeasonPrice,
		vehicle.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE vehicles
		SET is_active = FALSE, updated_at = $2
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, fuel, seats, deposit, low_season_price, high_season_price, is_active, created_at, updated_at
		FROM vehicles
		WHERE is_active = TRUE
	`

	// Строим WHERE по заданным фильтрам
	args := []interface{}{}
	argN := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argN)
		args = append(args, filter.Type)
		argN++
	}
	if filter.Fuel != "" {
		query += fmt.Sprintf(" AND fuel = $%d", argN)
		args = append(args, filter.Fuel)
		argN++
	}
	if filter.MinSeats > 0 {
		query += fmt.Sprintf(" AND seats >= $%d", argN)
		args = append(args, filter.MinSeats)
		argN++
	}
	if !filter.MaxPrice.IsZero() {
		query += fmt.Sprintf(" AND low_season_price <= $%d", argN)
		args = append(args, filter.MaxPrice)
		argN++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argN)
		args = append(args, "%"+filter.Search+"%")
		argN++
	}

	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []*domain.Vehicle{}
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *vehicleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// scanVehicle читает строку vehicles в доменную структуру
func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	var deposit decimal.NullDecimal

	err := row.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Type,
		&vehicle.Fuel,
		&vehicle.Seats,
		&deposit,
		&vehicle.LowSeasonPrice,
		&vehicle.HighSeasonPrice,
		&vehicle.IsActive,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deposit.Valid {
		vehicle.Deposit = &deposit.Decimal
	}

	return vehicle, nil
}

// depositValue разворачивает опциональный депозит для вставки (NULL при отсутствии)
func depositValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
