package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/Freeeeeet/barbershop_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceOfferingRepository struct {
	*base.Repository
}

func NewServiceOfferingRepository(pool *pgxpool.Pool) *ServiceOfferingRepository {
	return &ServiceOfferingRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает услугу по ID
func (r *ServiceOfferingRepository) GetByID(ctx context.Context, id int64) (*model.ServiceOffering, error) {
	query := `
		SELECT id, location_id, name, price, duration_minutes, is_active, created_at
		FROM service_offerings
		WHERE id = $1
	`

	var s model.ServiceOffering
	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.LocationID,
		&s.Name,
		&s.Price,
		&s.Duration,
		&s.IsActive,
		&s.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service offering by id: %w", err)
	}

	return &s, nil
}

// ListByLocation получает активные услуги салона
func (r *ServiceOfferingRepository) ListByLocation(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error) {
	query := `
		SELECT id, location_id, name, price, duration_minutes, is_active, created_at
		FROM service_offerings
		WHERE location_id = $1 AND is_active
		ORDER BY name
	`

	rows, err := r.Pool().Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list service offerings: %w", err)
	}
	defer rows.Close()

	var offerings []*model.ServiceOffering
	for rows.Next() {
		var s model.ServiceOffering
		if err := rows.Scan(&s.ID, &s.LocationID, &s.Name, &s.Price, &s.Duration, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service offering: %w", err)
		}
		offerings = append(offerings, &s)
	}

	return offerings, rows.Err()
}
