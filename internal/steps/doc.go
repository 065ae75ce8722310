// Package steps содержит каталог типов шагов и их реализации.
//
// # Обзор
//
// Тип шага (Kind) — это связка из трёх вещей:
//   - схема параметров (для properties-панели редактора)
//   - поведение выполнения против render surface
//   - генерация строки Robot Framework для экспорта
//
// Экземпляры шагов (domain.StepInstance) хранят только имя типа и параметры;
// поведение разрешается через Registry в момент выполнения или экспорта.
//
// # Интерфейс Kind
//
//	type Kind interface {
//	    Name() string
//	    Title() string
//	    Description() string
//	    Icon() string
//	    Params() []ParamDef
//	    Execute(ctx context.Context, req *Request) error
//	    ScriptLine(params map[string]string) string
//	}
//
// Execute и ScriptLine работают с одними и теми же ключами параметров.
// Незаполненные параметры получают placeholder из схемы.
//
// # Registry
//
//	registry := steps.DefaultRegistry()
//	kind, err := registry.Get("click_element")
//	if err != nil {
//	    // неизвестный тип: при выполнении — фатально,
//	    // при отрисовке/экспорте — шаг молча пропускается
//	}
//
// # Встроенные типы
//
//   - click_element (click.go) — клик по CSS-селектору;
//     ноль совпадений — ErrElementNotFound
//   - input_text (input.go) — установка значения + уведомление страницы
//     об изменении; текст может быть многострочным
//   - element_should_contain (contains.go) — подстрочная проверка текста;
//     провал — ErrAssertionFailed
//   - wait_for_element (wait.go) — опрос каждые 100мс до появления
//     или таймаута (timeout_ms, по умолчанию 5000) — ErrWaitTimeout
//
// # Обработка ошибок
//
// Шаги возвращают типизированные ошибки (ErrElementNotFound,
// ErrAssertionFailed, ErrWaitTimeout, ErrCancelled). Любая ошибка шага
// фатальна для текущего запуска: пайплайн логирует её и прерывает
// оставшиеся шаги. Retry-логики у шагов нет.
package steps
