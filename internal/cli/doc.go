// Package cli реализует инструмент командной строки Scenarium.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия со Scenarium API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления сценариями, runner'ами и schedules.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Scenarium API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	scenarios, err := client.ListScenarios()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: scenarium scenario list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - scenario: list, create, show, update, delete, add-step, move-step,
//     set-param, remove-step, export
//   - runner: open, list, show, log, maximize, minimize, rerun, close, viewport
//   - schedule: list, create, show, update, delete, enable, disable
//   - kinds: палитра типов шагов
//
// Каждая группа создаётся через фабричную функцию (NewScenarioCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
