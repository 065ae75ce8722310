// Package pipeline выполняет один запуск сценария: сборка документа,
// загрузка в изолированный surface, последовательное выполнение шагов.
//
// # Гарантии
//
//   - Шаги одного запуска выполняются строго по порядку; шаг N завершается
//     (успехом или ошибкой) до начала шага N+1.
//   - Первый упавший шаг прерывает запуск: оставшиеся шаги не выполняются.
//   - Все ошибки (сборка, таймаут загрузки, неизвестный тип шага, ошибки
//     шагов) конвертируются в строки лога и статус FAILURE — Run никогда
//     не возвращает ошибку наружу.
//   - Строки лога получают отметку времени и попадают в буфер по мере
//     выполнения, а не пакетом в конце.
//   - Повторный запуск очищает лог перед первой фазой.
//
// Управление конкурентными запусками (несколько runner'ов, executing-лок,
// viewport) живёт уровнем выше, в пакете runner.
package pipeline
