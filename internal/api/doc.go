// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (репозитории, manager, registry, logger)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - scenario_handler.go — обработчики для /scenarios и редактора шагов
//   - runner_handler.go   — обработчики для /runners и /viewport
//   - schedule_handler.go — обработчики для /schedules
//
// API предоставляет REST endpoints для управления сценариями,
// runner'ами и расписаниями регрессионных запусков.
package api
