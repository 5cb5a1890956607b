package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/Freeeeeet/barbershop_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

const bookingColumns = `
	b.id, b.reference, b.location_id, b.seat_id,
	b.customer_name, b.customer_email, b.customer_phone,
	b.start_at, b.duration_minutes, b.price, b.reminder_sent_at, b.created_at,
	COALESCE(
		array_agg(l.service_offering_id ORDER BY l.service_offering_id)
			FILTER (WHERE l.service_offering_id IS NOT NULL),
		'{}'
	)
`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.LocationID,
		&b.SeatID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.StartTime,
		&b.Duration,
		&b.Price,
		&b.ReminderSentAt,
		&b.CreatedAt,
		&b.ServiceOfferingIDs,
	)
	if err != nil {
		return nil, err
	}
	// timestamp без пояса приходит в UTC, это и есть настенное время салона
	b.StartTime = model.WallClock(b.StartTime)
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// QueryBookings возвращает брони, пересекающиеся с окном [From, To).
// Читает напрямую из БД без кэша, поэтому годится для повторной проверки перед записью.
func (r *BookingRepository) QueryBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN booking_services l ON l.booking_id = b.id
		WHERE ($1::bigint = 0 OR b.location_id = $1)
		  AND ($2::bigint IS NULL OR b.seat_id = $2)
		  AND b.start_at < $4
		  AND b.end_at > $3
		  AND b.id <> $5
		GROUP BY b.id
		ORDER BY b.start_at, b.seat_id
	`

	rows, err := r.Pool().Query(ctx, query,
		filter.LocationID,
		filter.SeatID,
		model.WallClock(filter.From),
		model.WallClock(filter.To),
		filter.ExcludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}

	return collectBookings(rows)
}

// InsertBooking создаёт бронь без услуг.
// Пересечение с другой бронью на том же кресле отсекается EXCLUDE-ограничением.
func (r *BookingRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (reference, location_id, seat_id, customer_name, customer_email, customer_phone,
		                      start_at, end_at, duration_minutes, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		booking.Reference,
		booking.LocationID,
		booking.SeatID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		model.WallClock(booking.StartTime),
		model.WallClock(booking.EndTime()),
		booking.Duration,
		booking.Price,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsExclusionViolation(err) {
			return fmt.Errorf("insert booking: %w", model.ErrConflict)
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

// InsertServiceLink привязывает услугу к брони
func (r *BookingRepository) InsertServiceLink(ctx context.Context, bookingID, serviceOfferingID int64) error {
	query := `
		INSERT INTO booking_services (booking_id, service_offering_id)
		VALUES ($1, $2)
	`

	if _, err := r.Pool().Exec(ctx, query, bookingID, serviceOfferingID); err != nil {
		return fmt.Errorf("insert service link: %w", err)
	}

	return nil
}

// DeleteBooking удаляет бронь вместе со связями на услуги (ON DELETE CASCADE)
func (r *BookingRepository) DeleteBooking(ctx context.Context, id int64) error {
	result, err := r.Pool().Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %d: %w", id, model.ErrNotFound)
	}

	return nil
}

// GetByID получает бронь по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN booking_services l ON l.booking_id = b.id
		WHERE b.id = $1
		GROUP BY b.id
	`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// GetByReference получает бронь по публичному коду
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN booking_services l ON l.booking_id = b.id
		WHERE b.reference = $1
		GROUP BY b.id
	`

	booking, err := scanBooking(r.Pool().QueryRow(ctx, query, reference))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by reference: %w", err)
	}

	return booking, nil
}

// Reschedule переносит бронь и заменяет список услуг одной транзакцией
func (r *BookingRepository) Reschedule(ctx context.Context, booking *model.Booking) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE bookings
			SET seat_id = $1, start_at = $2, end_at = $3, duration_minutes = $4, price = $5,
			    reminder_sent_at = NULL
			WHERE id = $6
		`,
			booking.SeatID,
			model.WallClock(booking.StartTime),
			model.WallClock(booking.EndTime()),
			booking.Duration,
			booking.Price,
			booking.ID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return model.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM booking_services WHERE booking_id = $1`, booking.ID); err != nil {
			return err
		}

		for _, offeringID := range booking.ServiceOfferingIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO booking_services (booking_id, service_offering_id) VALUES ($1, $2)`,
				booking.ID, offeringID,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if base.IsExclusionViolation(err) {
			return fmt.Errorf("reschedule booking: %w", model.ErrConflict)
		}
		return fmt.Errorf("reschedule booking: %w", err)
	}

	booking.ReminderSentAt = nil
	return nil
}

// ListDueReminders возвращает брони, начинающиеся в [from, to), по которым напоминание ещё не отправлено
func (r *BookingRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		LEFT JOIN booking_services l ON l.booking_id = b.id
		WHERE b.reminder_sent_at IS NULL
		  AND b.start_at >= $1
		  AND b.start_at < $2
		GROUP BY b.id
		ORDER BY b.start_at
	`

	rows, err := r.Pool().Query(ctx, query, model.WallClock(from), model.WallClock(to))
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}

	return collectBookings(rows)
}

// MarkReminded отмечает, что напоминание отправлено
func (r *BookingRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	result, err := r.Pool().Exec(ctx,
		`UPDATE bookings SET reminder_sent_at = $1 WHERE id = $2`,
		model.WallClock(at), id,
	)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark reminded %d: %w", id, model.ErrNotFound)
	}

	return nil
}
