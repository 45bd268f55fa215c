package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Compile-time check
var _ TelemetryPublisher = (*rabbitMQTelemetryPublisher)(nil)

type rabbitMQTelemetryPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQTelemetryPublisher declares the telemetry queue and returns a
// publisher over a dedicated channel.
func NewRabbitMQTelemetryPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (TelemetryPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for telemetry publisher: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("failed to declare telemetry queue %s: %w", queueName, err)
	}

	return &rabbitMQTelemetryPublisher{
		channel:   channel,
		queueName: queueName,
		logger:    logger.Named("TelemetryPublisher"),
	}, nil
}

func (p *rabbitMQTelemetryPublisher) PublishTastingEvent(ctx context.Context, event TastingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tasting event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish tasting event",
			zap.String("type", event.Type),
			zap.String("sessionID", event.SessionID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish tasting event: %w", err)
	}

	p.logger.Debug("Tasting event published",
		zap.String("type", event.Type),
		zap.String("sessionID", event.SessionID.String()),
	)
	return nil
}

func (p *rabbitMQTelemetryPublisher) Close() error {
	return p.channel.Close()
}
