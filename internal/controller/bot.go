package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/formatting"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// DayBookings источник броней за день
type DayBookings interface {
	ListForDay(ctx context.Context, date string, locationID int64) ([]*model.Booking, error)
}

// BotController telegram-бот администратора салона: записи на сегодня, завтра и на дату.
// Отвечает только в чат администратора.
type BotController struct {
	bot         *bot.Bot
	bookings    DayBookings
	adminChatID int64
	clock       func() time.Time
	logger      *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookings DayBookings,
	adminChatID int64,
	clock func() time.Time,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:         botInstance,
		bookings:    bookings,
		adminChatID: adminChatID,
		clock:       clock,
		logger:      logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypeExact, c.HandleTomorrow)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/day", bot.MatchTypePrefix, c.HandleDay)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "today", Description: "📅 Записи на сегодня"},
		{Command: "tomorrow", Description: "🗓 Записи на завтра"},
		{Command: "day", Description: "🔎 Записи на дату: /day 2026-03-14"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := c.requireAdmin(update)
	if !ok {
		return
	}

	c.sendMessage(ctx, b, chatID,
		"💈 Бот администратора барбершопа\n\n"+
			"Сюда приходят уведомления о новых, перенесённых и удалённых записях.\n\n"+
			"Команды:\n"+
			"/today - записи на сегодня\n"+
			"/tomorrow - записи на завтра\n"+
			"/day ГГГГ-ММ-ДД - записи на дату")
}

func (c *BotController) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := c.requireAdmin(update)
	if !ok {
		return
	}
	c.sendMessage(ctx, b, chatID, c.dayReport(ctx, model.StartOfDay(c.clock())))
}

func (c *BotController) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := c.requireAdmin(update)
	if !ok {
		return
	}
	c.sendMessage(ctx, b, chatID, c.dayReport(ctx, model.StartOfDay(c.clock()).AddDate(0, 0, 1)))
}

func (c *BotController) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, ok := c.requireAdmin(update)
	if !ok {
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/day"))
	day, err := model.ParseDate(arg)
	if err != nil {
		c.sendMessage(ctx, b, chatID, "❌ Укажите дату в формате ГГГГ-ММ-ДД, например /day 2026-03-14")
		return
	}

	c.sendMessage(ctx, b, chatID, c.dayReport(ctx, day))
}

// dayReport текст со списком записей по всем салонам за день
func (c *BotController) dayReport(ctx context.Context, day time.Time) string {
	bookings, err := c.bookings.ListForDay(ctx, day.Format(model.DateLayout), 0)
	if err != nil {
		c.logger.Error("Failed to list bookings for bot", zap.Time("day", day), zap.Error(err))
		return "❌ Не удалось загрузить записи. Попробуйте позже."
	}

	header := fmt.Sprintf("📅 %s", formatting.FormatDateWithWeekday(day))
	if len(bookings) == 0 {
		return header + "\n\nЗаписей нет."
	}

	seats := make(map[int64]struct{}, len(bookings))
	total := 0
	for _, booking := range bookings {
		seats[booking.SeatID] = struct{}{}
		total += booking.Price
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%d %s, занято %d %s, выручка %s\n",
		header,
		len(bookings), formatting.PluralizeBookings(len(bookings)),
		len(seats), formatting.PluralizeSeats(len(seats)),
		formatting.FormatPriceShort(total),
	)
	for _, booking := range bookings {
		sb.WriteString("\n• ")
		sb.WriteString(formatting.BookingLine(booking))
	}
	return sb.String()
}

// requireAdmin пропускает только сообщения из чата администратора
func (c *BotController) requireAdmin(update *models.Update) (int64, bool) {
	if update.Message == nil {
		return 0, false
	}

	chatID := update.Message.Chat.ID
	if chatID != c.adminChatID {
		c.logger.Warn("Bot command from unknown chat ignored", zap.Int64("chat_id", chatID))
		return 0, false
	}

	return chatID, true
}

// sendMessage отправляет сообщение и логирует если не удалось
func (c *BotController) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
