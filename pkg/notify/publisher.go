package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event is the fire-and-forget notification emitted to the delivery
// service. Delivery mechanics (websocket, push, email digest) are outside
// this backend's concern.
type Event struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Event types
const (
	TypeInterviewScheduled = "interview_scheduled"
)

// Publisher emits notification events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type rabbitPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewRabbitPublisher connects to RabbitMQ and declares the durable
// notification queue. Returns an error if the broker is unreachable;
// callers typically fall back to NewDummy.
func NewRabbitPublisher(url, queue string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("notify: declare queue: %w", err)
	}

	return &rabbitPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, event Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.CreatedAt,
		Body:         body,
	})
}

func (p *rabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// Dummy is a no-op publisher used when RabbitMQ is not configured.
type Dummy struct{}

func NewDummy() Publisher { return &Dummy{} }

func (*Dummy) Publish(ctx context.Context, event Event) error { return nil }

func (*Dummy) Close() error { return nil }
