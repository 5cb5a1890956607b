package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderService рассылает напоминания клиентам о ближайших визитах
type ReminderService struct {
	store  ReminderStore
	sender ReminderSender
	clock  Clock
	logger *zap.Logger
}

func NewReminderService(store ReminderStore, sender ReminderSender, clock Clock, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		store:  store,
		sender: sender,
		clock:  clock,
		logger: logger,
	}
}

// SendDueReminders отправляет напоминания по броням, начинающимся в ближайшие lead.
// Бронь помечается только после успешной отправки, неудачные попадут в следующий запуск.
func (s *ReminderService) SendDueReminders(ctx context.Context, lead time.Duration) (int, error) {
	now := s.clock()

	due, err := s.store.ListDueReminders(ctx, now, now.Add(lead))
	if err != nil {
		return 0, storeError("list due reminders", err)
	}

	sent := 0
	for _, booking := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := s.sender.SendReminder(ctx, booking); err != nil {
			s.logger.Error("Failed to send reminder",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.store.MarkReminded(ctx, booking.ID, s.clock()); err != nil {
			s.logger.Error("Failed to mark booking as reminded",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("Reminders sent", zap.Int("count", sent), zap.Int("due", len(due)))
	}

	return sent, nil
}

// RunReminders адаптер для планировщика
func (s *ReminderService) RunReminders(lead time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.SendDueReminders(ctx, lead)
		return err
	}
}
