// Package export генерирует из сценария внешне потребляемый тест-кейс
// Robot Framework (SeleniumLibrary): фиксированная шапка плюс по одной
// keyword-строке на шаг, в порядке последовательности.
//
// Формат строки отдаёт сам тип шага (Kind.ScriptLine) — экспорт только
// склеивает результат. Многострочные параметры разворачиваются
// в continuation-строки внутри ScriptLine.
package export
