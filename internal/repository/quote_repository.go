package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	domainrepo "github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
)

// QuoteRepository хранит оценки стоимости. Записи неизменяемы:
// пересчёт вставляет новую строку, метода Update здесь нет намеренно.
type QuoteRepository struct {
	db *sqlx.DB
}

var _ domainrepo.QuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

type quoteRow struct {
	ID              uuid.UUID  `db:"id"`
	MoveRequestID   uuid.UUID  `db:"move_request_id"`
	ProviderID      uuid.UUID  `db:"provider_id"`
	TotalPrice      float64    `db:"total_price"`
	PriceRangeLow   float64    `db:"price_range_low"`
	PriceRangeHigh  float64    `db:"price_range_high"`
	Breakdown       []byte     `db:"breakdown"`
	EstimatedHours  float64    `db:"estimated_hours"`
	EstimatedVolume float64    `db:"estimated_volume"`
	Currency        string     `db:"currency"`
	CalculatedAt    time.Time  `db:"calculated_at"`
	ValidUntil      *time.Time `db:"valid_until"`
}

func (row quoteRow) toEntity() (*entity.Quote, error) {
	var breakdown valueobject.CostBreakdown
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &breakdown); err != nil {
			return nil, fmt.Errorf("quote repository: decode breakdown %w", err)
		}
	}

	q := &entity.Quote{
		ID:              row.ID,
		MoveRequestID:   row.MoveRequestID,
		ProviderID:      row.ProviderID,
		TotalPrice:      row.TotalPrice,
		PriceRangeLow:   row.PriceRangeLow,
		PriceRangeHigh:  row.PriceRangeHigh,
		Breakdown:       breakdown,
		EstimatedHours:  row.EstimatedHours,
		EstimatedVolume: row.EstimatedVolume,
		Currency:        row.Currency,
		CalculatedAt:    row.CalculatedAt,
		ValidUntil:      row.ValidUntil,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuoteRepository) Create(ctx context.Context, q *entity.Quote) error {
	breakdown, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("quote repository: encode breakdown %w", err)
	}

	query := `
		INSERT INTO quotes (id, move_request_id, provider_id, total_price, price_range_low, price_range_high,
		                    breakdown, estimated_hours, estimated_volume, currency, calculated_at, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		q.ID,
		q.MoveRequestID,
		q.ProviderID,
		q.TotalPrice,
		q.PriceRangeLow,
		q.PriceRangeHigh,
		breakdown,
		q.EstimatedHours,
		q.EstimatedVolume,
		q.Currency,
		q.CalculatedAt,
		q.ValidUntil,
	); err != nil {
		return fmt.Errorf("quote repository: insert %w", err)
	}
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var row quoteRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM quotes WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("quote repository: get by id %w", err)
	}
	return row.toEntity()
}

func (r *QuoteRepository) FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Quote, error) {
	query := `
		SELECT * FROM quotes
		WHERE move_request_id = $1
		ORDER BY calculated_at DESC
	`
	var rows []quoteRow
	if err := r.db.SelectContext(ctx, &rows, query, moveRequestID); err != nil {
		return nil, fmt.Errorf("quote repository: list by move request %w", err)
	}

	quotes := make([]*entity.Quote, 0, len(rows))
	for _, row := range rows {
		q, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *QuoteRepository) FindLatestByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Quote, error) {
	query := `
		SELECT * FROM quotes
		WHERE provider_id = $1 AND move_request_id = $2
		ORDER BY calculated_at DESC
		LIMIT 1
	`
	var row quoteRow
	if err := r.db.GetContext(ctx, &row, query, providerID, moveRequestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("quote repository: get latest %w", err)
	}
	return row.toEntity()
}
