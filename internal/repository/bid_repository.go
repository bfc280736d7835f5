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
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
)

// BidRepository хранит оферты компаний.
type BidRepository struct {
	db *sqlx.DB
}

var _ domainrepo.BidRepository = (*BidRepository)(nil)

func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

type bidRow struct {
	ID              uuid.UUID  `db:"id"`
	MoveRequestID   uuid.UUID  `db:"move_request_id"`
	ProviderID      uuid.UUID  `db:"provider_id"`
	QuoteID         *uuid.UUID `db:"quote_id"`
	TotalPrice      float64    `db:"total_price"`
	Breakdown       []byte     `db:"breakdown"`
	ValidityDays    int        `db:"validity_days"`
	Notes           string     `db:"notes"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	SubmittedAt     *time.Time `db:"submitted_at"`
	AcceptedAt      *time.Time `db:"accepted_at"`
	RejectedAt      *time.Time `db:"rejected_at"`
	RejectionReason string     `db:"rejection_reason"`
}

func (row bidRow) toEntity() (*entity.Bid, error) {
	var breakdown valueobject.CostBreakdown
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &breakdown); err != nil {
			return nil, fmt.Errorf("bid repository: decode breakdown %w", err)
		}
	}

	b := &entity.Bid{
		ID:              row.ID,
		MoveRequestID:   row.MoveRequestID,
		ProviderID:      row.ProviderID,
		QuoteID:         row.QuoteID,
		TotalPrice:      row.TotalPrice,
		Breakdown:       breakdown,
		ValidityDays:    row.ValidityDays,
		Notes:           row.Notes,
		Status:          valueobject.BidStatus(row.Status),
		CreatedAt:       row.CreatedAt,
		SubmittedAt:     row.SubmittedAt,
		AcceptedAt:      row.AcceptedAt,
		RejectedAt:      row.RejectedAt,
		RejectionReason: row.RejectionReason,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BidRepository) Create(ctx context.Context, b *entity.Bid) error {
	breakdown, err := json.Marshal(b.Breakdown)
	if err != nil {
		return fmt.Errorf("bid repository: encode breakdown %w", err)
	}

	query := `
		INSERT INTO bids (id, move_request_id, provider_id, quote_id, total_price, breakdown, validity_days,
		                  notes, status, created_at, submitted_at, accepted_at, rejected_at, rejection_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		b.ID,
		b.MoveRequestID,
		b.ProviderID,
		b.QuoteID,
		b.TotalPrice,
		breakdown,
		b.ValidityDays,
		b.Notes,
		b.Status,
		b.CreatedAt,
		b.SubmittedAt,
		b.AcceptedAt,
		b.RejectedAt,
		b.RejectionReason,
	); err != nil {
		return fmt.Errorf("bid repository: insert %w", err)
	}
	return nil
}

func (r *BidRepository) Update(ctx context.Context, b *entity.Bid) error {
	affected, err := r.update(ctx, b, "")
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("bid repository: оферта %s не найдена", b.ID)
	}
	return nil
}

// UpdateFromSubmitted сохраняет оферту, покидающую статус submitted.
// Статус проверяется прямо в условии UPDATE: при гонке двух решений
// по одной оферте побеждает первое, второе получает конфликт.
func (r *BidRepository) UpdateFromSubmitted(ctx context.Context, b *entity.Bid) error {
	affected, err := r.update(ctx, b, ` AND status = 'submitted'`)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.New(apperror.ErrCodeConflict, "оферта уже обработана")
	}
	return nil
}

func (r *BidRepository) update(ctx context.Context, b *entity.Bid, guard string) (int64, error) {
	breakdown, err := json.Marshal(b.Breakdown)
	if err != nil {
		return 0, fmt.Errorf("bid repository: encode breakdown %w", err)
	}

	query := `
		UPDATE bids
		SET total_price = $2,
		    breakdown = $3,
		    validity_days = $4,
		    notes = $5,
		    status = $6,
		    submitted_at = $7,
		    accepted_at = $8,
		    rejected_at = $9,
		    rejection_reason = $10
		WHERE id = $1` + guard

	result, err := r.db.ExecContext(
		ctx,
		query,
		b.ID,
		b.TotalPrice,
		breakdown,
		b.ValidityDays,
		b.Notes,
		b.Status,
		b.SubmittedAt,
		b.AcceptedAt,
		b.RejectedAt,
		b.RejectionReason,
	)
	if err != nil {
		return 0, fmt.Errorf("bid repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bid repository: update rows affected %w", err)
	}
	return affected, nil
}

func (r *BidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bids WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bid repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("bid repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bid repository: оферта %s не найдена", id)
	}
	return nil
}

func (r *BidRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	var row bidRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM bids WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bid repository: get by id %w", err)
	}
	return row.toEntity()
}

func (r *BidRepository) FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Bid, error) {
	return r.findMany(ctx, `SELECT * FROM bids WHERE move_request_id = $1 ORDER BY created_at`, moveRequestID)
}

func (r *BidRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Bid, error) {
	return r.findMany(ctx, `SELECT * FROM bids WHERE provider_id = $1 ORDER BY created_at DESC`, providerID)
}

func (r *BidRepository) FindByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Bid, error) {
	query := `
		SELECT * FROM bids
		WHERE provider_id = $1 AND move_request_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var row bidRow
	if err := r.db.GetContext(ctx, &row, query, providerID, moveRequestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bid repository: get by provider and move request %w", err)
	}
	return row.toEntity()
}

func (r *BidRepository) findMany(ctx context.Context, query string, arg interface{}) ([]*entity.Bid, error) {
	var rows []bidRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("bid repository: list %w", err)
	}

	bids := make([]*entity.Bid, 0, len(rows))
	for _, row := range rows {
		b, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}
