package availability

import (
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

// Compute для каждого слота каталога определяет кресла, свободные на весь
// интервал [start, start+duration). Порядок слотов совпадает с каталогом,
// порядок кресел - с seats, повторяющиеся кресла учитываются один раз.
func Compute(date time.Time, catalog []int, duration int, seats []*model.Seat, bookings []*model.Booking) []model.TimeSlot {
	busy := make(map[int64][]Interval, len(seats))
	for _, b := range bookings {
		busy[b.SeatID] = append(busy[b.SeatID], NewInterval(b.StartTime, b.Duration))
	}

	uniqueSeats := make([]*model.Seat, 0, len(seats))
	seen := make(map[int64]struct{}, len(seats))
	for _, seat := range seats {
		if _, ok := seen[seat.ID]; ok {
			continue
		}
		seen[seat.ID] = struct{}{}
		uniqueSeats = append(uniqueSeats, seat)
	}

	slots := make([]model.TimeSlot, 0, len(catalog))
	for _, minute := range catalog {
		candidate := NewInterval(model.At(date, minute), duration)

		free := make([]*model.Seat, 0, len(uniqueSeats))
		for _, seat := range uniqueSeats {
			if isFree(candidate, busy[seat.ID]) {
				free = append(free, seat)
			}
		}

		slots = append(slots, model.TimeSlot{
			Time:           model.FormatClock(minute),
			Available:      len(free) > 0,
			AvailableSeats: free,
		})
	}

	return slots
}

// FirstConflict возвращает первую бронь, пересекающую candidate, или nil
func FirstConflict(candidate Interval, bookings []*model.Booking) *model.Booking {
	for _, b := range bookings {
		if candidate.Overlaps(NewInterval(b.StartTime, b.Duration)) {
			return b
		}
	}
	return nil
}

func isFree(candidate Interval, busy []Interval) bool {
	for _, iv := range busy {
		if candidate.Overlaps(iv) {
			return false
		}
	}
	return true
}
