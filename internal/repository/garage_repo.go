package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"revonn/internal/db"
)

type GarageRepository struct {
	DB *sql.DB
}

func NewGarageRepository(db *sql.DB) *GarageRepository {
	return &GarageRepository{DB: db}
}

func (r *GarageRepository) GetByID(ctx context.Context, id uuid.UUID) (*db.Garage, error) {
	query := `
		SELECT id, owner_id, name, COALESCE(phone, ''), COALESCE(address, ''), created_at, updated_at
		FROM garages WHERE id = $1`

	var g db.Garage
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Phone, &g.Address, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("garage %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying garage: %w", err)
	}
	return &g, nil
}
