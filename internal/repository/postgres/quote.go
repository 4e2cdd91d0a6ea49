package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type quoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

// Create вставляет смету и ее позиции одной транзакцией.
// Позиции пишутся с явным position: порядок в истории должен
// воспроизводиться байт-в-байт при каждом чтении.
func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	quoteQuery := `
		INSERT INTO quotes (id, reservation_number, client_name, start_date, end_date, days, total, pdf_base64, image_base64, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, quoteQuery,
		quote.ID,
		quote.ReservationNumber,
		quote.ClientName,
		quote.StartDate,
		quote.EndDate,
		quote.Days,
		quote.Total,
		quote.PDFBase64,
		quote.ImageBase64,
		quote.CreatedAt,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO quote_items (quote_id, position, vehicle_id, vehicle_name, vehicle_type, vehicle_fuel, price_per_day, line_total, season, manually_edited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for i, item := range quote.Items {
		_, err = tx.Exec(ctx, itemQuery,
			quote.ID,
			i,
			item.VehicleID,
			item.VehicleName,
			item.VehicleType,
			item.VehicleFuel,
			item.PricePerDay,
			item.LineTotal,
			item.Season,
			item.ManuallyEdited,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `
		SELECT id, reservation_number, client_name, start_date, end_date, days, total, pdf_base64, image_base64, created_at
		FROM quotes
		WHERE id = $1
	`

	quote := &domain.Quote{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&quote.ID,
		&quote.ReservationNumber,
		&quote.ClientName,
		&quote.StartDate,
		&quote.EndDate,
		&quote.Days,
		&quote.Total,
		&quote.PDFBase64,
		&quote.ImageBase64,
		&quote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{quote.ID})
	if err != nil {
		return nil, err
	}
	quote.Items = items[quote.ID]

	return quote, nil
}

func (r *quoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	query := `
		SELECT id, reservation_number, client_name, start_date, end_date, days, total, pdf_base64, image_base64, created_at
		FROM quotes
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []*domain.Quote{}
	ids := []string{}
	for rows.Next() {
		quote := &domain.Quote{}
		err := rows.Scan(
			&quote.ID,
			&quote.ReservationNumber,
			&quote.ClientName,
			&quote.StartDate,
			&quote.EndDate,
			&quote.Days,
			&quote.Total,
			&quote.PDFBase64,
			&quote.ImageBase64,
			&quote.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
		ids = append(ids, quote.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return quotes, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, quote := range quotes {
		quote.Items = items[quote.ID]
	}

	return quotes, nil
}

func (r *quoteRepository) UpdateArtifacts(ctx context.Context, id, pdfBase64, imageBase64 string) error {
	query := `
		UPDATE quotes
		SET pdf_base64 = $2, image_base64 = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, pdfBase64, imageBase64)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}

	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}

	return nil
}

// loadItems загружает позиции для набора смет, сохраняя позиционный порядок
func (r *quoteRepository) loadItems(ctx context.Context, quoteIDs []string) (map[string][]domain.QuoteItem, error) {
	query := `
		SELECT quote_id, vehicle_id, vehicle_name, vehicle_type, vehicle_fuel, price_per_day, line_total, season, manually_edited
		FROM quote_items
		WHERE quote_id = ANY($1)
		ORDER BY quote_id, position
	`

	rows, err := r.db.Query(ctx, query, quoteIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.QuoteItem, len(quoteIDs))
	for rows.Next() {
		var quoteID string
		item := domain.QuoteItem{}
		err := rows.Scan(
			&quoteID,
			&item.VehicleID,
			&item.VehicleName,
			&item.VehicleType,
			&item.VehicleFuel,
			&item.PricePerDay,
			&item.LineTotal,
			&item.Season,
			&item.ManuallyEdited,
		)
		if err != nil {
			return nil, err
		}
		result[quoteID] = append(result[quoteID], item)
	}

	return result, rows.Err()
}
