// Package mq — обвязка RabbitMQ: соединение с reconnect, публикация
// и потребление событий запусков.
//
// # Топология
//
//	scenarium.runs (direct)
//	├── runs.requested [routing: requested]
//	│       Producer: Scheduler
//	│       Consumer: API (runner host) — открывает runner по запросу
//	└── runs.finished [routing: finished]
//	        Producer: Runner Manager
//	        Consumer: внешние подписчики (алерты, отчёты)
//
// # Сообщения
//
// Каждое сообщение — JSON-конверт Message{id, type, payload, timestamp}.
// Типы: run.requested (RunRequestedPayload), runner.finished
// (RunnerFinishedPayload).
//
// MQ опционален: при отсутствии MQ_URL API работает без брокера —
// запуски по расписанию и события завершения просто не ходят.
package mq
