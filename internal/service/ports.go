package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

// BookingStore - хранилище броней, которое нужно для записи клиента.
// QueryBookings обязан читать актуальное состояние БД без кэша.
type BookingStore interface {
	QueryBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	InsertServiceLink(ctx context.Context, bookingID, serviceOfferingID int64) error
	DeleteBooking(ctx context.Context, id int64) error
}

// BookingRepository расширяет BookingStore операциями администратора
type BookingRepository interface {
	BookingStore
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByReference(ctx context.Context, reference string) (*model.Booking, error)
	Reschedule(ctx context.Context, booking *model.Booking) error
}

type ReminderStore interface {
	ListDueReminders(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}

type SeatStore interface {
	GetByID(ctx context.Context, id int64) (*model.Seat, error)
	ListByLocation(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error)
	Create(ctx context.Context, seat *model.Seat) error
	SetActive(ctx context.Context, id int64, active bool) (*model.Seat, error)
}

type ServiceOfferingStore interface {
	GetByID(ctx context.Context, id int64) (*model.ServiceOffering, error)
	ListByLocation(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error)
}

type LocationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]*model.Location, error)
}

// BookingNotifier получает события по броням. Ошибки доставки обрабатывает сам.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *model.Booking)
	NotifyBookingRescheduled(ctx context.Context, booking *model.Booking)
	NotifyBookingDeleted(ctx context.Context, booking *model.Booking)
}

type ReminderSender interface {
	SendReminder(ctx context.Context, booking *model.Booking) error
}

// Clock возвращает текущее настенное время салона
type Clock func() time.Time

// ShopClock часы салона в часовом поясе loc
func ShopClock(loc *time.Location) Clock {
	return func() time.Time {
		return model.WallClock(time.Now().In(loc))
	}
}
