package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/barbershop_booking/internal/availability"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	bookings  BookingRepository
	seats     SeatStore
	offerings ServiceOfferingStore
	notifier  BookingNotifier
	clock     Clock
	logger    *zap.Logger
}

func NewBookingService(
	bookings BookingRepository,
	seats SeatStore,
	offerings ServiceOfferingStore,
	notifier BookingNotifier,
	clock Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		seats:     seats,
		offerings: offerings,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}
}

// SubmitBooking записывает клиента на выбранное кресло и время.
// Перед записью брони кресла на этот день перечитываются из хранилища:
// клиент мог долго смотреть на устаревшее расписание.
func (s *BookingService) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.CustomerName == "" {
		return nil, validationError("customer name is required")
	}
	if !isValidEmail(req.CustomerEmail) {
		return nil, validationError("customer email %q is not valid", req.CustomerEmail)
	}
	if req.CustomerPhone == "" {
		return nil, validationError("customer phone is required")
	}
	if req.LocationID <= 0 {
		return nil, validationError("location id is required")
	}

	start, err := parseStart(req.Date, req.Time, s.clock())
	if err != nil {
		return nil, err
	}

	seat, err := resolveSeat(ctx, s.seats, req.LocationID, req.SeatID)
	if err != nil {
		return nil, err
	}

	offerings, duration, price, err := resolveOfferings(ctx, s.offerings, req.LocationID, req.ServiceOfferingIDs)
	if err != nil {
		return nil, err
	}

	requested := availability.NewInterval(start, duration)
	if err := s.ensureSeatFree(ctx, req.LocationID, seat.ID, requested, 0); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		Reference:     uuid.NewString(),
		LocationID:    req.LocationID,
		SeatID:        seat.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartTime:     start,
		Duration:      duration,
		Price:         price,
	}

	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		if errors.Is(err, model.ErrConflict) {
			s.logger.Warn("Booking rejected by store, seat taken concurrently",
				zap.Int64("seat_id", seat.ID),
				zap.Time("start_time", start),
			)
			return nil, fmt.Errorf("%w: seat %d at %s", model.ErrConflict, seat.ID, start.Format("2006-01-02 15:04"))
		}
		return nil, storeError("insert booking", err)
	}

	for _, offering := range offerings {
		if err := s.bookings.InsertServiceLink(ctx, booking.ID, offering.ID); err != nil {
			return nil, s.rollbackBooking(ctx, booking, offering.ID, err)
		}
	}

	booking.ServiceOfferingIDs = offeringIDs(offerings)
	booking.Seat = seat
	booking.Services = offerings

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference),
		zap.Int64("location_id", booking.LocationID),
		zap.Int64("seat_id", booking.SeatID),
		zap.Time("start_time", booking.StartTime),
		zap.Int("duration", booking.Duration),
	)

	go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking)

	return booking, nil
}

// ensureSeatFree перечитывает брони кресла за день и ищет пересечение с requested
func (s *BookingService) ensureSeatFree(ctx context.Context, locationID, seatID int64, requested availability.Interval, excludeID int64) error {
	day := model.StartOfDay(requested.Start)
	existing, err := s.bookings.QueryBookings(ctx, model.BookingFilter{
		LocationID: locationID,
		SeatID:     &seatID,
		From:       day,
		To:         laterOf(day.AddDate(0, 0, 1), requested.End),
		ExcludeID:  excludeID,
	})
	if err != nil {
		return storeError("query bookings", err)
	}

	if conflict := availability.FirstConflict(requested, existing); conflict != nil {
		s.logger.Warn("Seat no longer available",
			zap.Int64("seat_id", seatID),
			zap.Time("requested_start", requested.Start),
			zap.Int64("conflicting_booking_id", conflict.ID),
		)
		return fmt.Errorf("%w: seat %d is booked from %s to %s", model.ErrConflict, seatID,
			conflict.StartTime.Format(model.ClockLayout), conflict.EndTime().Format(model.ClockLayout))
	}

	return nil
}

// rollbackBooking удаляет бронь, к которой не удалось привязать услугу.
// Удаление выполняется даже если исходный контекст уже отменён.
func (s *BookingService) rollbackBooking(ctx context.Context, booking *model.Booking, offeringID int64, cause error) error {
	if err := s.bookings.DeleteBooking(context.WithoutCancel(ctx), booking.ID); err != nil {
		s.logger.Error("Failed to roll back booking without services",
			zap.Int64("booking_id", booking.ID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return fmt.Errorf("%w: link service %d: %w (rollback failed: %v)", model.ErrStore, offeringID, cause, err)
	}

	s.logger.Warn("Booking rolled back after service link failure",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("service_offering_id", offeringID),
		zap.Error(cause),
	)

	return fmt.Errorf("%w: link service %d: %w", model.ErrStore, offeringID, cause)
}

// GetByReference получает бронь по публичному коду
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	if _, err := uuid.Parse(reference); err != nil {
		return nil, validationError("invalid booking reference %q", reference)
	}

	booking, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, storeError("get booking", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", reference, model.ErrNotFound)
	}

	return booking, nil
}

// ListForDay получает брони салона, затрагивающие день date (0 - все салоны)
func (s *BookingService) ListForDay(ctx context.Context, date string, locationID int64) ([]*model.Booking, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.QueryBookings(ctx, model.BookingFilter{
		LocationID: locationID,
		From:       day,
		To:         day.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, storeError("query bookings", err)
	}

	return bookings, nil
}

// DeleteBooking удаляет бронь (только администратор)
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return storeError("get booking", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %d: %w", id, model.ErrNotFound)
	}

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return storeError("delete booking", err)
	}

	s.logger.Info("Booking deleted",
		zap.Int64("booking_id", id),
		zap.String("reference", booking.Reference),
	)

	go s.notifier.NotifyBookingDeleted(context.WithoutCancel(ctx), booking)

	return nil
}

// RescheduleBooking меняет дату, время, кресло или услуги брони (только администратор).
// Проверка пересечений та же, что при записи, кроме самой переносимой брони.
func (s *BookingService) RescheduleBooking(ctx context.Context, id int64, req model.RescheduleRequest) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get booking", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %d: %w", id, model.ErrNotFound)
	}

	start, err := parseStart(req.Date, req.Time, s.clock())
	if err != nil {
		return nil, err
	}

	seat, err := resolveSeat(ctx, s.seats, booking.LocationID, req.SeatID)
	if err != nil {
		return nil, err
	}

	offerings, duration, price, err := resolveOfferings(ctx, s.offerings, booking.LocationID, req.ServiceOfferingIDs)
	if err != nil {
		return nil, err
	}

	requested := availability.NewInterval(start, duration)
	if err := s.ensureSeatFree(ctx, booking.LocationID, seat.ID, requested, booking.ID); err != nil {
		return nil, err
	}

	updated := *booking
	updated.SeatID = seat.ID
	updated.StartTime = start
	updated.Duration = duration
	updated.Price = price
	updated.ServiceOfferingIDs = offeringIDs(offerings)

	if err := s.bookings.Reschedule(ctx, &updated); err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, storeError("reschedule booking", err)
	}

	updated.Seat = seat
	updated.Services = offerings

	s.logger.Info("Booking rescheduled",
		zap.Int64("booking_id", id),
		zap.Int64("seat_id", seat.ID),
		zap.Time("start_time", start),
		zap.Int("duration", duration),
	)

	go s.notifier.NotifyBookingRescheduled(context.WithoutCancel(ctx), &updated)

	return &updated, nil
}
