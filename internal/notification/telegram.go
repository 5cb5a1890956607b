package notification

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/formatting"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// messageSender часть *bot.Bot, которая нужна для уведомлений
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier пишет администратору салона в telegram о новых и изменённых бронях
type TelegramNotifier struct {
	sender messageSender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier без бота или chat id уведомления отключены
func NewTelegramNotifier(b *bot.Bot, chatID int64, logger *zap.Logger) *TelegramNotifier {
	n := &TelegramNotifier{chatID: chatID, logger: logger}
	if b == nil || chatID == 0 {
		logger.Warn("Telegram bot token or admin chat id is empty, admin notifications disabled")
		return n
	}
	n.sender = b
	return n
}

func (n *TelegramNotifier) NotifyBookingCreated(ctx context.Context, booking *model.Booking) {
	n.send(ctx, "✅ Новая запись\n\n"+formatting.BookingSummary(booking))
}

func (n *TelegramNotifier) NotifyBookingRescheduled(ctx context.Context, booking *model.Booking) {
	n.send(ctx, "🔄 Запись перенесена\n\n"+formatting.BookingSummary(booking))
}

func (n *TelegramNotifier) NotifyBookingDeleted(ctx context.Context, booking *model.Booking) {
	n.send(ctx, fmt.Sprintf("❌ Запись удалена\n\n%s", formatting.BookingSummary(booking)))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.sender == nil {
		n.logger.Debug("Telegram notification skipped (bot disabled)")
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("Telegram notification skipped (context cancelled)", zap.Int64("chat_id", n.chatID))
		return
	}

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Error("Failed to send telegram notification",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err),
		)
	}
}
