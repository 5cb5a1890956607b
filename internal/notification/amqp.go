package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Очереди событий по броням, имя очереди совпадает с routing key
const (
	QueueBookingCreated     = "booking.created"
	QueueBookingRescheduled = "booking.rescheduled"
	QueueBookingDeleted     = "booking.deleted"
)

// BookingEvent тело сообщения в очереди
type BookingEvent struct {
	Type               string    `json:"type"`
	BookingID          int64     `json:"booking_id"`
	Reference          string    `json:"reference"`
	LocationID         int64     `json:"location_id"`
	SeatID             int64     `json:"seat_id"`
	StartTime          string    `json:"start_time"` // настенное время салона, 2006-01-02T15:04
	Duration           int       `json:"duration"`
	Price              int       `json:"price"`
	ServiceOfferingIDs []int64   `json:"service_offering_ids"`
	OccurredAt         time.Time `json:"occurred_at"`
}

func newBookingEvent(eventType string, b *model.Booking, now time.Time) BookingEvent {
	ids := b.ServiceOfferingIDs
	if ids == nil {
		ids = []int64{}
	}
	return BookingEvent{
		Type:               eventType,
		BookingID:          b.ID,
		Reference:          b.Reference,
		LocationID:         b.LocationID,
		SeatID:             b.SeatID,
		StartTime:          b.StartTime.Format("2006-01-02T15:04"),
		Duration:           b.Duration,
		Price:              b.Price,
		ServiceOfferingIDs: ids,
		OccurredAt:         now.UTC(),
	}
}

// AMQPPublisher публикует события по броням в RabbitMQ.
// Соединение открывается на каждую публикацию, событий немного.
type AMQPPublisher struct {
	url    string
	logger *zap.Logger
}

// NewAMQPPublisher без RABBITMQ_URL публикация отключена
func NewAMQPPublisher(url string, logger *zap.Logger) *AMQPPublisher {
	if url == "" {
		logger.Warn("RabbitMQ url is empty, booking events disabled")
	}
	return &AMQPPublisher{url: url, logger: logger}
}

func (p *AMQPPublisher) NotifyBookingCreated(ctx context.Context, booking *model.Booking) {
	p.publishLogged(ctx, QueueBookingCreated, booking)
}

func (p *AMQPPublisher) NotifyBookingRescheduled(ctx context.Context, booking *model.Booking) {
	p.publishLogged(ctx, QueueBookingRescheduled, booking)
}

func (p *AMQPPublisher) NotifyBookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publishLogged(ctx, QueueBookingDeleted, booking)
}

func (p *AMQPPublisher) publishLogged(ctx context.Context, queue string, booking *model.Booking) {
	if p.url == "" {
		return
	}
	if err := p.Publish(ctx, queue, newBookingEvent(queue, booking, time.Now())); err != nil {
		p.logger.Error("Failed to publish booking event",
			zap.String("queue", queue),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("Booking event published",
		zap.String("queue", queue),
		zap.Int64("booking_id", booking.ID),
	)
}

// Publish отправляет событие в durable очередь queue как persistent JSON
func (p *AMQPPublisher) Publish(ctx context.Context, queue string, event BookingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    fmt.Sprintf("%s:%d:%d", event.Type, event.BookingID, event.OccurredAt.UnixNano()),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	return nil
}
