package steps

import (
	"context"
	"fmt"
)

// KindClickElement — имя типа шага клика.
const KindClickElement = "click_element"

// ClickKind — шаг клика по элементу.
//
// Находит элемент по CSS-селектору и синтезирует клик.
// Ноль совпадений — фатальная ошибка запуска.
type ClickKind struct {
	selector ParamDef
}

// NewClickKind создаёт ClickKind.
func NewClickKind() *ClickKind {
	return &ClickKind{
		selector: ParamDef{
			Key:         "selector",
			Label:       "Селектор",
			Input:       "text",
			Placeholder: "#submit",
		},
	}
}

// Name возвращает имя типа.
func (k *ClickKind) Name() string { return KindClickElement }

// Title возвращает имя для редактора.
func (k *ClickKind) Title() string { return "Click Element" }

// Description возвращает описание типа.
func (k *ClickKind) Description() string {
	return "Кликает по элементу, найденному по CSS-селектору"
}

// Icon возвращает имя иконки.
func (k *ClickKind) Icon() string { return "cursor-click" }

// Params возвращает схему параметров.
func (k *ClickKind) Params() []ParamDef {
	return []ParamDef{k.selector}
}

// Execute выполняет клик.
func (k *ClickKind) Execute(ctx context.Context, req *Request) error {
	selector := ParamOrPlaceholder(req.Params, k.selector)

	n, err := req.Surface.Count(ctx, selector)
	if err != nil {
		return fmt.Errorf("query %s: %w", selector, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	if err := req.Surface.Click(ctx, selector); err != nil {
		return err
	}

	req.Logf("clicked element %s", selector)
	return nil
}

// ScriptLine возвращает строку Robot Framework для клика.
func (k *ClickKind) ScriptLine(params map[string]string) string {
	selector := ParamOrPlaceholder(params, k.selector)
	return scriptRow("Click Element", cssLocator(selector))
}
