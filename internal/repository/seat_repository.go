package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/Freeeeeet/barbershop_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository struct {
	*base.Repository
}

func NewSeatRepository(pool *pgxpool.Pool) *SeatRepository {
	return &SeatRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт кресло в салоне
func (r *SeatRepository) Create(ctx context.Context, seat *model.Seat) error {
	query := `
		INSERT INTO seats (location_id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(ctx, query, seat.LocationID, seat.Name, seat.IsActive).
		Scan(&seat.ID, &seat.CreatedAt)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return fmt.Errorf("create seat: location %d: %w", seat.LocationID, model.ErrNotFound)
		}
		return fmt.Errorf("create seat: %w", err)
	}

	return nil
}

// GetByID получает кресло по ID
func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*model.Seat, error) {
	query := `
		SELECT id, location_id, name, is_active, created_at
		FROM seats
		WHERE id = $1
	`

	var seat model.Seat
	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.LocationID,
		&seat.Name,
		&seat.IsActive,
		&seat.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seat by id: %w", err)
	}

	return &seat, nil
}

// ListByLocation получает кресла салона
func (r *SeatRepository) ListByLocation(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error) {
	query := `
		SELECT id, location_id, name, is_active, created_at
		FROM seats
		WHERE location_id = $1
		  AND (NOT $2 OR is_active)
		ORDER BY id
	`

	rows, err := r.Pool().Query(ctx, query, locationID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()

	var seats []*model.Seat
	for rows.Next() {
		var seat model.Seat
		if err := rows.Scan(&seat.ID, &seat.LocationID, &seat.Name, &seat.IsActive, &seat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

// SetActive включает или выключает кресло. Кресла не удаляются, на них ссылаются брони.
func (r *SeatRepository) SetActive(ctx context.Context, id int64, active bool) (*model.Seat, error) {
	query := `
		UPDATE seats
		SET is_active = $1
		WHERE id = $2
		RETURNING id, location_id, name, is_active, created_at
	`

	var seat model.Seat
	err := r.Pool().QueryRow(ctx, query, active, id).Scan(
		&seat.ID,
		&seat.LocationID,
		&seat.Name,
		&seat.IsActive,
		&seat.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("set seat active: %w", err)
	}

	return &seat, nil
}
