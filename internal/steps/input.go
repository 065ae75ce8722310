package steps

import (
	"context"
	"fmt"
)

// KindInputText — имя типа шага ввода текста.
const KindInputText = "input_text"

// InputKind — шаг ввода текста.
//
// Находит элемент по CSS-селектору, устанавливает значение и уведомляет
// страницу об изменении, чтобы реактивные UI увидели новый ввод.
// Текст может быть многострочным (поле textarea в редакторе).
type InputKind struct {
	selector ParamDef
	text     ParamDef
}

// NewInputKind создаёт InputKind.
func NewInputKind() *InputKind {
	return &InputKind{
		selector: ParamDef{
			Key:         "selector",
			Label:       "Селектор",
			Input:       "text",
			Placeholder: "#login",
		},
		text: ParamDef{
			Key:   "text",
			Label: "Текст",
			Input: "textarea",
		},
	}
}

// Name возвращает имя типа.
func (k *InputKind) Name() string { return KindInputText }

// Title возвращает имя для редактора.
func (k *InputKind) Title() string { return "Input Text" }

// Description возвращает описание типа.
func (k *InputKind) Description() string {
	return "Вводит текст в элемент, найденный по CSS-селектору"
}

// Icon возвращает имя иконки.
func (k *InputKind) Icon() string { return "keyboard" }

// Params возвращает схему параметров.
func (k *InputKind) Params() []ParamDef {
	return []ParamDef{k.selector, k.text}
}

// Execute выполняет ввод текста.
func (k *InputKind) Execute(ctx context.Context, req *Request) error {
	selector := ParamOrPlaceholder(req.Params, k.selector)
	text := ParamOrPlaceholder(req.Params, k.text)

	n, err := req.Surface.Count(ctx, selector)
	if err != nil {
		return fmt.Errorf("query %s: %w", selector, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	if err := req.Surface.SetValue(ctx, selector, text); err != nil {
		return err
	}

	req.Logf("typed %d characters into %s", len(text), selector)
	return nil
}

// ScriptLine возвращает строку Robot Framework для ввода.
// Многострочный текст разворачивается в continuation-строки.
func (k *InputKind) ScriptLine(params map[string]string) string {
	selector := ParamOrPlaceholder(params, k.selector)
	text := ParamOrPlaceholder(params, k.text)
	return scriptRow("Input Text", cssLocator(selector), scriptArg(text))
}
