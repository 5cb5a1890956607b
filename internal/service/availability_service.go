package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/availability"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"go.uber.org/zap"
)

type AvailabilityService struct {
	locations LocationStore
	seats     SeatStore
	offerings ServiceOfferingStore
	bookings  BookingStore
	schedule  availability.Schedule
	clock     Clock
	logger    *zap.Logger
}

func NewAvailabilityService(
	locations LocationStore,
	seats SeatStore,
	offerings ServiceOfferingStore,
	bookings BookingStore,
	schedule availability.Schedule,
	clock Clock,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		locations: locations,
		seats:     seats,
		offerings: offerings,
		bookings:  bookings,
		schedule:  schedule,
		clock:     clock,
		logger:    logger,
	}
}

// GetAvailability возвращает слоты дня date для набора услуг салона.
// Брони читаются заново при каждом вызове, слоты в прошлом помечаются занятыми.
func (s *AvailabilityService) GetAvailability(ctx context.Context, date string, locationID int64, offeringIDs []int64) ([]model.TimeSlot, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if day.Before(model.StartOfDay(now)) {
		return nil, validationError("date %s is in the past", date)
	}

	if locationID <= 0 {
		return nil, validationError("location id is required")
	}
	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, storeError("get location", err)
	}
	if location == nil {
		return nil, fmt.Errorf("location %d: %w", locationID, model.ErrNotFound)
	}

	_, duration, _, err := resolveOfferings(ctx, s.offerings, locationID, offeringIDs)
	if err != nil {
		return nil, err
	}

	seats, err := s.seats.ListByLocation(ctx, locationID, true)
	if err != nil {
		return nil, storeError("list seats", err)
	}

	catalog := s.schedule.Starts()
	if len(catalog) == 0 {
		return []model.TimeSlot{}, nil
	}

	window := availability.Interval{
		Start: model.At(day, catalog[0]),
		End:   availability.NewInterval(model.At(day, catalog[len(catalog)-1]), duration).End,
	}
	bookings, err := s.bookings.QueryBookings(ctx, model.BookingFilter{
		LocationID: locationID,
		From:       window.Start,
		To:         window.End,
	})
	if err != nil {
		return nil, storeError("query bookings", err)
	}

	slots := availability.Compute(day, catalog, duration, seats, bookings)
	for i, minute := range catalog {
		if model.At(day, minute).Before(now) {
			slots[i].Available = false
			slots[i].AvailableSeats = []*model.Seat{}
		}
	}

	s.logger.Debug("Availability computed",
		zap.Int64("location_id", locationID),
		zap.String("date", date),
		zap.Int("duration", duration),
		zap.Int("seats", len(seats)),
		zap.Int("bookings", len(bookings)),
	)

	return slots, nil
}
