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

// MoveRequestRepository отвечает за хранение заявок на переезд.
// Параметры переезда (адреса, этажи, дата) лежат одной JSONB-колонкой:
// внутри них нет фильтруемых полей, а читаются они всегда целиком.
type MoveRequestRepository struct {
	db *sqlx.DB
}

var _ domainrepo.MoveRequestRepository = (*MoveRequestRepository)(nil)

func NewMoveRequestRepository(db *sqlx.DB) *MoveRequestRepository {
	return &MoveRequestRepository{db: db}
}

type moveRequestRow struct {
	ID          uuid.UUID  `db:"id"`
	Status      string     `db:"status"`
	VideoID     uuid.UUID  `db:"video_id"`
	InventoryID *uuid.UUID `db:"inventory_id"`
	ProviderID  *uuid.UUID `db:"provider_id"`
	MoveDetails []byte     `db:"move_details"`
	SentAt      *time.Time `db:"sent_at"`
	ExpiresAt   *time.Time `db:"expires_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (row moveRequestRow) toEntity() (*entity.MoveRequest, error) {
	var details valueobject.MoveDetails
	if len(row.MoveDetails) > 0 {
		if err := json.Unmarshal(row.MoveDetails, &details); err != nil {
			return nil, fmt.Errorf("move request repository: decode move details %w", err)
		}
	}

	request := &entity.MoveRequest{
		ID:          row.ID,
		Status:      valueobject.MoveRequestStatus(row.Status),
		VideoID:     row.VideoID,
		InventoryID: row.InventoryID,
		ProviderID:  row.ProviderID,
		MoveDetails: details,
		SentAt:      row.SentAt,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return request, nil
}

func (r *MoveRequestRepository) Create(ctx context.Context, request *entity.MoveRequest) error {
	details, err := json.Marshal(request.MoveDetails)
	if err != nil {
		return fmt.Errorf("move request repository: encode move details %w", err)
	}

	query := `
		INSERT INTO move_requests (id, status, video_id, inventory_id, provider_id, move_details, sent_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		request.ID,
		request.Status,
		request.VideoID,
		request.InventoryID,
		request.ProviderID,
		details,
		request.SentAt,
		request.ExpiresAt,
		request.CreatedAt,
		request.UpdatedAt,
	); err != nil {
		return fmt.Errorf("move request repository: insert %w", err)
	}
	return nil
}

func (r *MoveRequestRepository) Update(ctx context.Context, request *entity.MoveRequest) error {
	details, err := json.Marshal(request.MoveDetails)
	if err != nil {
		return fmt.Errorf("move request repository: encode move details %w", err)
	}

	query := `
		UPDATE move_requests
		SET status = $2,
		    inventory_id = $3,
		    provider_id = $4,
		    move_details = $5,
		    sent_at = $6,
		    expires_at = $7,
		    updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		request.ID,
		request.Status,
		request.InventoryID,
		request.ProviderID,
		details,
		request.SentAt,
		request.ExpiresAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("move request repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("move request repository: update rows affected %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("move request repository: заявка %s не найдена", request.ID)
	}
	return nil
}

func (r *MoveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MoveRequest, error) {
	var row moveRequestRow
	query := `
		SELECT id, status, video_id, inventory_id, provider_id, move_details, sent_at, expires_at, created_at, updated_at
		FROM move_requests
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("move request repository: get by id %w", err)
	}
	return row.toEntity()
}

// List возвращает страницу заявок и общее количество под фильтром.
func (r *MoveRequestRepository) List(ctx context.Context, filter domainrepo.MoveRequestFilter) ([]*entity.MoveRequest, int, error) {
	countQuery := `SELECT COUNT(*) FROM move_requests WHERE 1=1`
	query := `
		SELECT id, status, video_id, inventory_id, provider_id, move_details, sent_at, expires_at, created_at, updated_at
		FROM move_requests
		WHERE 1=1
	`
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		clause := fmt.Sprintf(" AND status = $%d", argIndex)
		query += clause
		countQuery += clause
		args = append(args, filter.Status)
		argIndex++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("move request repository: count %w", err)
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	var rows []moveRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("move request repository: list %w", err)
	}

	requests := make([]*entity.MoveRequest, 0, len(rows))
	for _, row := range rows {
		request, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}
	return requests, total, nil
}
