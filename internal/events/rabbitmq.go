// Package events publishes order lifecycle messages for downstream consumers such as the mailer.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyOrderCreated is used for messages about newly placed orders.
const RoutingKeyOrderCreated = "order.created"

// OrderEvent is the message body published for an order.
// Fields carries the registration details rendered into order emails.
type OrderEvent struct {
	Type     string              `json:"type"`
	OrderID  string              `json:"order_id"`
	CartID   string              `json:"cart_id"`
	Total    string              `json:"total"`
	Tickets  int                 `json:"tickets"`
	Fields   []models.EmailField `json:"fields"`
	Occurred time.Time           `json:"occurred"`
}

// NewOrderCreatedEvent builds the message for a placed order.
func NewOrderCreatedEvent(order *models.Order, tickets int, fields []models.EmailField) OrderEvent {
	return OrderEvent{
		Type:     "created",
		OrderID:  order.ID,
		CartID:   order.CartID,
		Total:    order.Total.StringFixed(2),
		Tickets:  tickets,
		Fields:   fields,
		Occurred: order.CreatedAt,
	}
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes order events to a durable topic exchange
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      *slog.Logger
}

// NewRabbitMQPublisher dials the broker and declares the exchange
func NewRabbitMQPublisher(url, exchange string, log *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log,
	}, nil
}

// PublishOrderCreated sends a persistent JSON message for the order
func (p *RabbitMQPublisher) PublishOrderCreated(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		MessageId:    event.OrderID,
		Type:         event.Type,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderCreated, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	p.log.Debug("order event published", "order_id", event.OrderID, "exchange", p.exchange)
	return nil
}

// Close releases the channel and connection
func (p *RabbitMQPublisher) Close() {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.log.Warn("failed to close rabbitmq channel", "error", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.log.Warn("failed to close rabbitmq connection", "error", err)
		}
	}
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

// PublishOrderCreated does nothing
func (NopPublisher) PublishOrderCreated(ctx context.Context, event OrderEvent) error { return nil }
