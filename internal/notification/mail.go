package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/formatting"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrMailDisabled = errors.New("mail notifications are disabled")

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// MailNotifier отправляет клиенту письма: подтверждение, перенос, отмена, напоминание
type MailNotifier struct {
	sender mailSender
	from   string
	logger *zap.Logger
}

// NewMailNotifier без SMTP_HOST или адреса отправителя письма не отправляются
func NewMailNotifier(cfg MailConfig, logger *zap.Logger) *MailNotifier {
	n := &MailNotifier{from: cfg.From, logger: logger}
	if cfg.Host == "" || cfg.From == "" {
		logger.Warn("SMTP host or sender address is empty, customer e-mails disabled")
		return n
	}
	n.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return n
}

func (n *MailNotifier) Enabled() bool {
	return n.sender != nil
}

func (n *MailNotifier) NotifyBookingCreated(ctx context.Context, booking *model.Booking) {
	n.sendLogged(ctx, booking, "Запись подтверждена",
		"Вы записаны в барбершоп. Ждём вас!")
}

func (n *MailNotifier) NotifyBookingRescheduled(ctx context.Context, booking *model.Booking) {
	n.sendLogged(ctx, booking, "Запись перенесена",
		"Администратор перенёс вашу запись. Новые данные:")
}

func (n *MailNotifier) NotifyBookingDeleted(ctx context.Context, booking *model.Booking) {
	n.sendLogged(ctx, booking, "Запись отменена",
		"Ваша запись отменена администратором. Выберите другое время на сайте.")
}

// SendReminder отправляет напоминание о визите. Ошибка возвращается, чтобы бронь не помечалась.
func (n *MailNotifier) SendReminder(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.send(booking, "Напоминание о визите",
		fmt.Sprintf("Напоминаем, что вы записаны на %s.", formatting.FormatDateTime(booking.StartTime)))
}

func (n *MailNotifier) sendLogged(ctx context.Context, booking *model.Booking, subject, intro string) {
	if err := ctx.Err(); err != nil {
		n.logger.Warn("Customer e-mail cancelled",
			zap.Int64("booking_id", booking.ID),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}

	err := n.send(booking, subject, intro)
	if errors.Is(err, ErrMailDisabled) {
		n.logger.Debug("Customer e-mail skipped (mail disabled)", zap.Int64("booking_id", booking.ID))
		return
	}
	if err != nil {
		n.logger.Error("Failed to send customer e-mail",
			zap.Int64("booking_id", booking.ID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (n *MailNotifier) send(booking *model.Booking, subject, intro string) error {
	if n.sender == nil {
		return ErrMailDisabled
	}
	if booking.CustomerEmail == "" {
		return fmt.Errorf("booking %d has no customer e-mail", booking.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", booking.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s · %s", subject, formatting.FormatDateTime(booking.StartTime)))
	m.SetBody("text/plain", fmt.Sprintf("Здравствуйте, %s!\n\n%s\n\n%s\n",
		booking.CustomerName, intro, formatting.BookingSummary(booking)))

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", booking.CustomerEmail, err)
	}
	return nil
}
