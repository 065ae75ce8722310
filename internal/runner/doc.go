// Package runner управляет множеством одновременных сессий выполнения
// сценариев (runner'ов) и единственной общей смотровой поверхностью
// (viewport).
//
// # Модель
//
// Runner = сценарий + эксклюзивный surface + буфер лога + статус.
// Идентичность субъекта — ID сценария: повторный Open существующего
// субъекта разворачивает живой runner вместо создания дубликата.
//
// Статусы: CREATED → RUNNING → {SUCCESS | FAILURE}, с возвратом
// в RUNNING при rerun. Ортогонально статусу runner может быть развёрнут
// (привязан ко viewport) или свёрнут — выполнение в фоне это не трогает.
//
// # Конкурентность
//
// Каждый пайплайн работает в своей горутине. Внутри одного runner'а шаги
// строго последовательны; между runner'ами порядка нет. Advisory-лок
// executing делает rerun во время запуска no-op'ом (не очередью).
// Отмены на середине запуска нет: запуск бросают закрытием runner'а,
// а завершение пайплайна, не найдя регистрации, становится no-op.
//
// # Ошибки
//
// Ошибки пайплайна (сборка, таймаут загрузки, упавшие шаги) никогда
// не пробрасываются из Open/Rerun — они оседают в статусе FAILURE
// и строках лога, которые остаются доступными до явного закрытия.
//
// # События и метрики
//
// По завершении запуска менеджер публикует runner.finished в RabbitMQ
// (если настроен publisher) и инкрементит Prometheus-счётчики запусков.
package runner
