package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология Scenarium.
const (
	// ExchangeRuns — обменник событий запусков.
	ExchangeRuns Exchange = "scenarium.runs"

	// QueueRunsRequested — запросы на запуск сценария.
	// Producer: Scheduler, Consumer: API (runner host).
	QueueRunsRequested Queue = "runs.requested"

	// QueueRunsFinished — события завершения запусков.
	// Producer: Runner Manager, Consumer: внешние подписчики.
	QueueRunsFinished Queue = "runs.finished"

	// RoutingKeyRequested — ключ для запросов на запуск.
	RoutingKeyRequested RoutingKey = "requested"

	// RoutingKeyFinished — ключ для событий завершения.
	RoutingKeyFinished RoutingKey = "finished"
)

// SetupTopology объявляет обменники, очереди и привязки.
// Идемпотентно: повторное объявление существующей топологии безопасно.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeRuns), // name
			"direct",             // type
			true,                 // durable
			false,                // auto-deleted
			false,                // internal
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeRuns, err)
		}

		bindings := []struct {
			queue Queue
			key   RoutingKey
		}{
			{QueueRunsRequested, RoutingKeyRequested},
			{QueueRunsFinished, RoutingKeyFinished},
		}

		for _, b := range bindings {
			_, err := ch.QueueDeclare(
				string(b.queue), // name
				true,            // durable
				false,           // delete when unused
				false,           // exclusive
				false,           // no-wait
				nil,             // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", b.queue, err)
			}

			err = ch.QueueBind(
				string(b.queue),      // queue name
				string(b.key),        // routing key
				string(ExchangeRuns), // exchange
				false,                // no-wait
				nil,                  // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s: %w", b.queue, err)
			}
		}

		return nil
	})
}
