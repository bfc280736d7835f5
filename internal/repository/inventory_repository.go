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

// InventoryRepository хранит инвентарные описи. Позиции лежат одной
// JSONB-колонкой: опись всегда читается и сохраняется целиком.
type InventoryRepository struct {
	db *sqlx.DB
}

var _ domainrepo.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

type inventoryRow struct {
	ID            uuid.UUID  `db:"id"`
	MoveRequestID uuid.UUID  `db:"move_request_id"`
	Items         []byte     `db:"items"`
	Status        string     `db:"status"`
	TotalVolume   float64    `db:"total_volume"`
	CreatedAt     time.Time  `db:"created_at"`
	ConfirmedAt   *time.Time `db:"confirmed_at"`
}

func (row inventoryRow) toEntity() (*entity.Inventory, error) {
	items := []entity.Item{}
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, fmt.Errorf("inventory repository: decode items %w", err)
		}
	}

	return &entity.Inventory{
		ID:            row.ID,
		MoveRequestID: row.MoveRequestID,
		Items:         items,
		Status:        valueobject.InventoryStatus(row.Status),
		TotalVolume:   row.TotalVolume,
		CreatedAt:     row.CreatedAt,
		ConfirmedAt:   row.ConfirmedAt,
	}, nil
}

func (r *InventoryRepository) Create(ctx context.Context, inv *entity.Inventory) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("inventory repository: encode items %w", err)
	}

	query := `
		INSERT INTO inventories (id, move_request_id, items, status, total_volume, created_at, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		inv.ID,
		inv.MoveRequestID,
		items,
		inv.Status,
		inv.TotalVolume,
		inv.CreatedAt,
		inv.ConfirmedAt,
	); err != nil {
		return fmt.Errorf("inventory repository: insert %w", err)
	}
	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, inv *entity.Inventory) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("inventory repository: encode items %w", err)
	}

	query := `
		UPDATE inventories
		SET items = $2,
		    status = $3,
		    total_volume = $4,
		    confirmed_at = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, inv.ID, items, inv.Status, inv.TotalVolume, inv.ConfirmedAt)
	if err != nil {
		return fmt.Errorf("inventory repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("inventory repository: update rows affected %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("inventory repository: опись %s не найдена", inv.ID)
	}
	return nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Inventory, error) {
	return r.findOne(ctx, `SELECT * FROM inventories WHERE id = $1`, id)
}

func (r *InventoryRepository) FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) (*entity.Inventory, error) {
	return r.findOne(ctx, `SELECT * FROM inventories WHERE move_request_id = $1`, moveRequestID)
}

func (r *InventoryRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.Inventory, error) {
	var row inventoryRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("inventory repository: get %w", err)
	}
	return row.toEntity()
}
