package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

// ServiceNames перечисляет услуги брони через запятую
func ServiceNames(b *model.Booking) string {
	if len(b.Services) == 0 {
		return "не указаны"
	}
	names := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// SeatName возвращает название кресла или его номер, если кресло не загружено
func SeatName(b *model.Booking) string {
	if b.Seat != nil && b.Seat.Name != "" {
		return b.Seat.Name
	}
	return fmt.Sprintf("кресло #%d", b.SeatID)
}

// BookingSummary многострочное описание брони для уведомлений
func BookingSummary(b *model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Клиент: %s\n", b.CustomerName)
	fmt.Fprintf(&sb, "Телефон: %s\n", b.CustomerPhone)
	fmt.Fprintf(&sb, "Дата: %s\n", FormatDateWithWeekday(b.StartTime))
	fmt.Fprintf(&sb, "Время: %s (%s)\n", FormatTimeRange(b.StartTime, b.EndTime()), FormatDuration(b.Duration))
	fmt.Fprintf(&sb, "Место: %s\n", SeatName(b))
	fmt.Fprintf(&sb, "Услуги: %s\n", ServiceNames(b))
	fmt.Fprintf(&sb, "Стоимость: %s\n", FormatPrice(b.Price))
	fmt.Fprintf(&sb, "Код брони: %s", b.Reference)
	return sb.String()
}

// BookingLine однострочное описание брони для списков
func BookingLine(b *model.Booking) string {
	return fmt.Sprintf("%s · %s · %s · %s · %s",
		FormatTimeRange(b.StartTime, b.EndTime()),
		SeatName(b),
		b.CustomerName,
		b.CustomerPhone,
		FormatPriceShort(b.Price),
	)
}
