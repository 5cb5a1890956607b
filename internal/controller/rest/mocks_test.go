package rest

import (
	"context"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/stretchr/testify/mock"
)

type mockAvailabilitySvc struct{ mock.Mock }

func (m *mockAvailabilitySvc) GetAvailability(ctx context.Context, date string, locationID int64, offeringIDs []int64) ([]model.TimeSlot, error) {
	args := m.Called(ctx, date, locationID, offeringIDs)
	slots, _ := args.Get(0).([]model.TimeSlot)
	return slots, args.Error(1)
}

type mockBookingSvc struct{ mock.Mock }

func (m *mockBookingSvc) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	args := m.Called(ctx, reference)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) ListForDay(ctx context.Context, date string, locationID int64) ([]*model.Booking, error) {
	args := m.Called(ctx, date, locationID)
	b, _ := args.Get(0).([]*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookingSvc) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingSvc) RescheduleBooking(ctx context.Context, id int64, req model.RescheduleRequest) (*model.Booking, error) {
	args := m.Called(ctx, id, req)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

type mockCatalogSvc struct{ mock.Mock }

func (m *mockCatalogSvc) ListLocations(ctx context.Context) ([]*model.Location, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*model.Location)
	return l, args.Error(1)
}

func (m *mockCatalogSvc) ListSeats(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error) {
	args := m.Called(ctx, locationID, activeOnly)
	s, _ := args.Get(0).([]*model.Seat)
	return s, args.Error(1)
}

func (m *mockCatalogSvc) ListServices(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error) {
	args := m.Called(ctx, locationID)
	s, _ := args.Get(0).([]*model.ServiceOffering)
	return s, args.Error(1)
}

func (m *mockCatalogSvc) CreateSeat(ctx context.Context, locationID int64, name string) (*model.Seat, error) {
	args := m.Called(ctx, locationID, name)
	s, _ := args.Get(0).(*model.Seat)
	return s, args.Error(1)
}

func (m *mockCatalogSvc) SetSeatActive(ctx context.Context, seatID int64, active bool) (*model.Seat, error) {
	args := m.Called(ctx, seatID, active)
	s, _ := args.Get(0).(*model.Seat)
	return s, args.Error(1)
}

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Login(password string) (string, time.Time, error) {
	args := m.Called(password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockAuthSvc) ValidateToken(raw string) error {
	return m.Called(raw).Error(0)
}
