package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shaiso/Scenarium/internal/surface"
)

// Ошибки шагов.
var (
	// ErrKindNotFound — тип шага не найден в реестре.
	ErrKindNotFound = errors.New("step kind not found")

	// ErrElementNotFound — селектор не нашёл ни одного элемента.
	ErrElementNotFound = errors.New("element not found")

	// ErrAssertionFailed — проверка не прошла.
	ErrAssertionFailed = errors.New("assertion failed")

	// ErrWaitTimeout — ожидание элемента превысило таймаут.
	ErrWaitTimeout = errors.New("wait timeout")

	// ErrCancelled — выполнение шага отменено.
	ErrCancelled = errors.New("step execution cancelled")
)

// Kind — тип шага: связка из схемы параметров, поведения выполнения
// и генерации строки скрипта.
//
// Каждый встроенный тип (click_element, input_text, element_should_contain,
// wait_for_element) реализует этот интерфейс один раз; экземпляры шагов
// ссылаются на тип по имени через Registry.
//
// Execute и ScriptLine обязаны использовать одни и те же ключи параметров.
type Kind interface {
	// Name возвращает уникальное машинное имя типа.
	Name() string

	// Title возвращает человекочитаемое имя для редактора.
	Title() string

	// Description возвращает описание назначения типа.
	Description() string

	// Icon возвращает имя иконки для редактора.
	Icon() string

	// Params возвращает упорядоченную схему параметров.
	Params() []ParamDef

	// Execute выполняет шаг против surface.
	// Шаг должен проверять ctx.Done() в циклах ожидания.
	Execute(ctx context.Context, req *Request) error

	// ScriptLine возвращает строку Robot Framework для шага.
	// Чистая синхронная функция.
	ScriptLine(params map[string]string) string
}

// ParamDef — описание одного параметра шага.
type ParamDef struct {
	// Key — ключ в StepInstance.Params.
	Key string `json:"key"`

	// Label — подпись поля в редакторе.
	Label string `json:"label"`

	// Input — вид поля ввода: "text", "textarea", "number".
	Input string `json:"input"`

	// Placeholder — значение по умолчанию; подставляется при выполнении,
	// если параметр не заполнен.
	Placeholder string `json:"placeholder,omitempty"`
}

// Request — входные данные для выполнения шага.
type Request struct {
	// Params — параметры экземпляра шага.
	Params map[string]string

	// Surface — render surface текущего runner'а.
	Surface surface.Surface

	// Log — сток лога запуска. Строки попадают в буфер runner'а
	// по мере выполнения, не пакетом в конце.
	Log func(line string)
}

// Logf пишет форматированную строку в лог запуска.
func (r *Request) Logf(format string, args ...any) {
	if r.Log != nil {
		r.Log(fmt.Sprintf(format, args...))
	}
}

// ParamOrPlaceholder возвращает значение параметра
// или placeholder его определения, если значение не задано.
func ParamOrPlaceholder(params map[string]string, def ParamDef) string {
	if v, ok := params[def.Key]; ok && v != "" {
		return v
	}
	return def.Placeholder
}

// ParamInt извлекает числовой параметр. Невалидное или пустое значение
// заменяется placeholder'ом, затем fallback'ом.
func ParamInt(params map[string]string, def ParamDef, fallback int) int {
	raw := ParamOrPlaceholder(params, def)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
