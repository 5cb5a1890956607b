package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/Freeeeeet/barbershop_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationRepository struct {
	*base.Repository
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает салон по ID
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	var l model.Location
	err := r.Pool().QueryRow(ctx,
		`SELECT id, name, address, phone, created_at FROM locations WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by id: %w", err)
	}

	return &l, nil
}

// List получает все салоны
func (r *LocationRepository) List(ctx context.Context) ([]*model.Location, error) {
	rows, err := r.Pool().Query(ctx,
		`SELECT id, name, address, phone, created_at FROM locations ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []*model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, &l)
	}

	return locations, rows.Err()
}
