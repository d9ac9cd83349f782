package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// smsMessage is the payload consumed by the SMS gateway worker.
type smsMessage struct {
	To     string    `json:"to"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// RabbitSMS queues SMS messages on a durable RabbitMQ queue.
type RabbitSMS struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

func NewRabbitSMS(url, queue string, logger *slog.Logger) (*RabbitSMS, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &RabbitSMS{conn: conn, channel: ch, queue: queue, logger: logger}, nil
}

func (r *RabbitSMS) SendSMS(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(smsMessage{To: to, Body: body, SentAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal sms: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.channel.PublishWithContext(ctx,
		"",      // exchange
		r.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         payload,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish sms: %w", err)
	}
	return nil
}

func (r *RabbitSMS) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.channel.Close(); err != nil && r.logger != nil {
		r.logger.Warn("closing rabbitmq channel", "error", err)
	}
	return r.conn.Close()
}
