package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrStore, op, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrValidation, fmt.Sprintf(format, args...))
}

// parseStart собирает момент начала из даты и времени и отсекает прошлое
func parseStart(date, clock string, now time.Time) (time.Time, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := model.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	start := model.At(day, minute)
	if start.Before(now) {
		return time.Time{}, validationError("start time %s %s is in the past", date, clock)
	}

	return start, nil
}

// resolveSeat проверяет, что кресло существует, активно и стоит в этом салоне
func resolveSeat(ctx context.Context, seats SeatStore, locationID, seatID int64) (*model.Seat, error) {
	if seatID <= 0 {
		return nil, validationError("seat id is required")
	}

	seat, err := seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, storeError("get seat", err)
	}
	if seat == nil {
		return nil, validationError("unknown seat %d", seatID)
	}
	if seat.LocationID != locationID {
		return nil, validationError("seat %d does not belong to location %d", seatID, locationID)
	}
	if !seat.IsActive {
		return nil, validationError("seat %d is not active", seatID)
	}

	return seat, nil
}

// resolveOfferings загружает услуги и считает суммарные длительность и цену
func resolveOfferings(ctx context.Context, offerings ServiceOfferingStore, locationID int64, ids []int64) ([]*model.ServiceOffering, int, int, error) {
	if len(ids) == 0 {
		return nil, 0, 0, validationError("at least one service offering is required")
	}

	result := make([]*model.ServiceOffering, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	duration, price := 0, 0

	for _, id := range ids {
		if id <= 0 {
			return nil, 0, 0, validationError("invalid service offering id %d", id)
		}
		if _, ok := seen[id]; ok {
			return nil, 0, 0, validationError("service offering %d is listed twice", id)
		}
		seen[id] = struct{}{}

		offering, err := offerings.GetByID(ctx, id)
		if err != nil {
			return nil, 0, 0, storeError("get service offering", err)
		}
		if offering == nil {
			return nil, 0, 0, validationError("unknown service offering %d", id)
		}
		if offering.LocationID != locationID {
			return nil, 0, 0, validationError("service offering %d is not offered at location %d", id, locationID)
		}
		if !offering.IsActive {
			return nil, 0, 0, validationError("service offering %d is not active", id)
		}
		if offering.Duration <= 0 {
			return nil, 0, 0, validationError("service offering %d has non-positive duration", id)
		}

		duration += offering.Duration
		price += offering.Price
		result = append(result, offering)
	}

	return result, duration, price, nil
}

func offeringIDs(offerings []*model.ServiceOffering) []int64 {
	ids := make([]int64, 0, len(offerings))
	for _, o := range offerings {
		ids = append(ids, o.ID)
	}
	return ids
}

// isValidEmail простая структурная проверка адреса
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
