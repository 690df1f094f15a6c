package messaging

import (
	"fmt"

	"clinic-booking-service/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// NewRabbitMQConnection dials the broker and declares the durable topic
// exchange domain events are published to. It returns nil when no broker
// is configured.
func NewRabbitMQConnection(cfg config.RabbitMQConfig, log *logrus.Logger) (*amqp.Connection, error) {
	if cfg.URL == "" {
		log.Warn("RABBITMQ_URL not set, domain events are disabled")
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // args
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	log.Info("Successfully connected to RabbitMQ")
	return conn, nil
}
