// Package notification доставляет события по броням: администратору в telegram,
// клиенту на почту и во внешнюю шину RabbitMQ.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *model.Booking)
	NotifyBookingRescheduled(ctx context.Context, booking *model.Booking)
	NotifyBookingDeleted(ctx context.Context, booking *model.Booking)
}

const deliveryTimeout = 30 * time.Second

// Fanout рассылает событие всем каналам параллельно и ждёт завершения
type Fanout struct {
	notifiers []BookingNotifier
}

func NewFanout(notifiers ...BookingNotifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

func (f *Fanout) NotifyBookingCreated(ctx context.Context, booking *model.Booking) {
	f.each(ctx, func(ctx context.Context, n BookingNotifier) { n.NotifyBookingCreated(ctx, booking) })
}

func (f *Fanout) NotifyBookingRescheduled(ctx context.Context, booking *model.Booking) {
	f.each(ctx, func(ctx context.Context, n BookingNotifier) { n.NotifyBookingRescheduled(ctx, booking) })
}

func (f *Fanout) NotifyBookingDeleted(ctx context.Context, booking *model.Booking) {
	f.each(ctx, func(ctx context.Context, n BookingNotifier) { n.NotifyBookingDeleted(ctx, booking) })
}

func (f *Fanout) each(ctx context.Context, fn func(ctx context.Context, n BookingNotifier)) {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, n := range f.notifiers {
		wg.Add(1)
		go func(n BookingNotifier) {
			defer wg.Done()
			fn(ctx, n)
		}(n)
	}
	wg.Wait()
}
