package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Routing keys of the domain events.
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentAccepted  = "appointment.accepted"
	EventAppointmentRejected  = "appointment.rejected"
	EventAppointmentCompleted = "appointment.completed"
	EventKycSubmitted         = "kyc.submitted"
	EventKycApproved          = "kyc.approved"
	EventKycRejected          = "kyc.rejected"
)

// Event is the JSON body of every published message.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher delivers domain events after the producing transaction
// committed. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type rabbitPublisher struct {
	conn     *amqp.Connection
	exchange string
	log      *logrus.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewEventPublisher returns a RabbitMQ publisher, or one that drops events
// when conn is nil.
func NewEventPublisher(conn *amqp.Connection, exchange string, log *logrus.Logger) EventPublisher {
	if conn == nil {
		return noopPublisher{}
	}
	return &rabbitPublisher{conn: conn, exchange: exchange, log: log}
}

func (p *rabbitPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.log.Warnf("Failed to open channel for %s: %+v", eventType, err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Warnf("Failed to publish %s: %+v", eventType, err)
		return err
	}
	return nil
}

func (p *rabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	p.ch = ch
	return ch, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}
