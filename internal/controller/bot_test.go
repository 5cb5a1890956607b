package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDayBookings struct {
	bookings []*model.Booking
	err      error
	dates    []string
}

func (f *fakeDayBookings) ListForDay(ctx context.Context, date string, locationID int64) ([]*model.Booking, error) {
	f.dates = append(f.dates, date)
	return f.bookings, f.err
}

func newTestController(src DayBookings) *BotController {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return NewBotController(nil, src, 100, func() time.Time { return now }, zap.NewNop())
}

func TestBotController_DayReport(t *testing.T) {
	src := &fakeDayBookings{bookings: []*model.Booking{
		{SeatID: 1, CustomerName: "Иван", CustomerPhone: "+7999", StartTime: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), Duration: 30, Price: 150000},
		{SeatID: 2, CustomerName: "Олег", CustomerPhone: "+7888", StartTime: time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC), Duration: 45, Price: 80000},
		{SeatID: 1, CustomerName: "Пётр", CustomerPhone: "+7777", StartTime: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), Duration: 30, Price: 150000},
	}}
	c := newTestController(src)

	report := c.dayReport(context.Background(), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, []string{"2026-03-14"}, src.dates)
	assert.Contains(t, report, "14.03.2026, суббота")
	assert.Contains(t, report, "3 записи, занято 2 кресла, выручка 3 800 ₽")
	assert.Contains(t, report, "10:00-10:30")
	assert.Contains(t, report, "Олег")
}

func TestBotController_DayReportEmptyAndError(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, newTestController(&fakeDayBookings{}).dayReport(context.Background(), day), "Записей нет")

	failing := &fakeDayBookings{err: errors.New("db down")}
	assert.Contains(t, newTestController(failing).dayReport(context.Background(), day), "Не удалось")
}

func TestBotController_RequireAdmin(t *testing.T) {
	c := newTestController(&fakeDayBookings{})

	_, ok := c.requireAdmin(&models.Update{})
	assert.False(t, ok)

	_, ok = c.requireAdmin(&models.Update{Message: &models.Message{Chat: models.Chat{ID: 7}}})
	assert.False(t, ok)

	chatID, ok := c.requireAdmin(&models.Update{Message: &models.Message{Chat: models.Chat{ID: 100}}})
	assert.True(t, ok)
	assert.Equal(t, int64(100), chatID)
}
