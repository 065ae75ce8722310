// Package telemetry обеспечивает наблюдаемость системы.
//
// Включает:
//   - logging.go — structured logging через slog
//
// Prometheus метрики регистрируются в пакетах, которым они принадлежат
// (internal/runner), и экспортируются каждым сервисом на /metrics endpoint.
//
// Все сервисы используют единый формат логирования.
package telemetry
