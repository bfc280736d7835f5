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

// ProviderRepository — справочник компаний-перевозчиков.
type ProviderRepository struct {
	db *sqlx.DB
}

var _ domainrepo.ProviderRepository = (*ProviderRepository)(nil)

func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

type providerRow struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	Approved   bool      `db:"approved"`
	Conditions []byte    `db:"conditions"`
	CreatedAt  time.Time `db:"created_at"`
}

func (row providerRow) toEntity() (*entity.Provider, error) {
	var conditions valueobject.PricingConditions
	if len(row.Conditions) > 0 {
		if err := json.Unmarshal(row.Conditions, &conditions); err != nil {
			return nil, fmt.Errorf("provider repository: decode conditions %w", err)
		}
	}

	return &entity.Provider{
		ID:         row.ID,
		Name:       row.Name,
		Approved:   row.Approved,
		Conditions: conditions,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (r *ProviderRepository) Create(ctx context.Context, p *entity.Provider) error {
	conditions, err := json.Marshal(p.Conditions)
	if err != nil {
		return fmt.Errorf("provider repository: encode conditions %w", err)
	}

	query := `
		INSERT INTO providers (id, name, approved, conditions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Approved, conditions, p.CreatedAt); err != nil {
		return fmt.Errorf("provider repository: insert %w", err)
	}
	return nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	var row providerRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM providers WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("provider repository: get by id %w", err)
	}
	return row.toEntity()
}

func (r *ProviderRepository) FindApproved(ctx context.Context) ([]*entity.Provider, error) {
	var rows []providerRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM providers WHERE approved = TRUE ORDER BY name`); err != nil {
		return nil, fmt.Errorf("provider repository: list approved %w", err)
	}

	providers := make([]*entity.Provider, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
