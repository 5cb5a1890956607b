// Package rest HTTP API записи в барбершоп: публичная часть для клиентов и админка.
package rest

import (
	"context"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type AvailabilitySvc interface {
	GetAvailability(ctx context.Context, date string, locationID int64, offeringIDs []int64) ([]model.TimeSlot, error)
}

type BookingSvc interface {
	SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
	GetByReference(ctx context.Context, reference string) (*model.Booking, error)
	ListForDay(ctx context.Context, date string, locationID int64) ([]*model.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	RescheduleBooking(ctx context.Context, id int64, req model.RescheduleRequest) (*model.Booking, error)
}

type CatalogSvc interface {
	ListLocations(ctx context.Context) ([]*model.Location, error)
	ListSeats(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error)
	ListServices(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error)
	CreateSeat(ctx context.Context, locationID int64, name string) (*model.Seat, error)
	SetSeatActive(ctx context.Context, seatID int64, active bool) (*model.Seat, error)
}

type AuthSvc interface {
	Login(password string) (string, time.Time, error)
	ValidateToken(raw string) error
}

type Handler struct {
	availability AvailabilitySvc
	bookings     BookingSvc
	catalog      CatalogSvc
	auth         AuthSvc
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewHandler(availability AvailabilitySvc, bookings BookingSvc, catalog CatalogSvc, auth AuthSvc, logger *zap.Logger) *Handler {
	return &Handler{
		availability: availability,
		bookings:     bookings,
		catalog:      catalog,
		auth:         auth,
		validate:     validator.New(),
		logger:       logger,
	}
}
