package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	// MessageTypeRunRequested — запрос на запуск сценария.
	MessageTypeRunRequested MessageType = "run.requested"

	// MessageTypeRunnerFinished — runner завершил запуск.
	MessageTypeRunnerFinished MessageType = "runner.finished"
)

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload json.RawMessage `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// RunRequestedPayload — payload запроса на запуск сценария.
type RunRequestedPayload struct {
	// ScenarioID — сценарий, который нужно запустить.
	ScenarioID uuid.UUID `json:"scenario_id"`

	// ScheduleID — расписание-инициатор, если запуск по расписанию.
	ScheduleID *uuid.UUID `json:"schedule_id,omitempty"`
}

// RunnerFinishedPayload — payload события завершения запуска.
type RunnerFinishedPayload struct {
	RunnerID   uuid.UUID `json:"runner_id"`
	ScenarioID uuid.UUID `json:"scenario_id"`

	// Status — финальный статус: SUCCESS или FAILURE.
	Status string `json:"status"`
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует сообщение в обменник с ключом маршрутизации.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msgType MessageType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   raw,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // переживает рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}

// PublishRunRequested публикует запрос на запуск сценария.
// Потребитель: API (runner host).
func (p *Publisher) PublishRunRequested(ctx context.Context, payload RunRequestedPayload) error {
	return p.Publish(ctx, ExchangeRuns, RoutingKeyRequested, MessageTypeRunRequested, payload)
}

// PublishRunnerFinished публикует событие завершения запуска.
func (p *Publisher) PublishRunnerFinished(ctx context.Context, payload RunnerFinishedPayload) error {
	return p.Publish(ctx, ExchangeRuns, RoutingKeyFinished, MessageTypeRunnerFinished, payload)
}
