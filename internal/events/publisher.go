package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"artisanmarket/pkg/domain"
)

const routingKeyOrderPlaced = "order.placed"

// Publisher emits domain events to a RabbitMQ topic exchange. A nil Publisher
// is valid and drops every event, so callers never branch on whether
// messaging is configured.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher dials the broker and declares the topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

type orderPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	BuyerID    string    `json:"buyer_id"`
	ProductID  string    `json:"product_id"`
	ArtisanID  string    `json:"artisan_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishOrderPlaced emits one event per stored order row.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, o domain.Order) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(orderPlacedEvent{
		OrderID:    o.ID,
		BuyerID:    o.BuyerID,
		ProductID:  o.ProductID,
		ArtisanID:  o.ArtisanID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		OccurredAt: o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKeyOrderPlaced, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
