package steps

import (
	"context"
	"fmt"
	"strings"
)

// KindElementShouldContain — имя типа проверочного шага.
const KindElementShouldContain = "element_should_contain"

// ContainsKind — проверка текстового содержимого элемента.
//
// Проверка подстрочная, не на равенство: элемент проходит, если его
// текст содержит ожидаемый фрагмент.
type ContainsKind struct {
	selector ParamDef
	text     ParamDef
}

// NewContainsKind создаёт ContainsKind.
func NewContainsKind() *ContainsKind {
	return &ContainsKind{
		selector: ParamDef{
			Key:         "selector",
			Label:       "Селектор",
			Input:       "text",
			Placeholder: "#message",
		},
		text: ParamDef{
			Key:   "text",
			Label: "Ожидаемый текст",
			Input: "text",
		},
	}
}

// Name возвращает имя типа.
func (k *ContainsKind) Name() string { return KindElementShouldContain }

// Title возвращает имя для редактора.
func (k *ContainsKind) Title() string { return "Element Should Contain" }

// Description возвращает описание типа.
func (k *ContainsKind) Description() string {
	return "Проверяет, что текст элемента содержит ожидаемый фрагмент"
}

// Icon возвращает имя иконки.
func (k *ContainsKind) Icon() string { return "check-circle" }

// Params возвращает схему параметров.
func (k *ContainsKind) Params() []ParamDef {
	return []ParamDef{k.selector, k.text}
}

// Execute выполняет проверку.
func (k *ContainsKind) Execute(ctx context.Context, req *Request) error {
	selector := ParamOrPlaceholder(req.Params, k.selector)
	expected := ParamOrPlaceholder(req.Params, k.text)

	n, err := req.Surface.Count(ctx, selector)
	if err != nil {
		return fmt.Errorf("query %s: %w", selector, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	actual, err := req.Surface.Text(ctx, selector)
	if err != nil {
		return err
	}

	if !strings.Contains(actual, expected) {
		return fmt.Errorf("%w: %s does not contain %q (actual: %q)",
			ErrAssertionFailed, selector, expected, actual)
	}

	req.Logf("element %s contains %q", selector, expected)
	return nil
}

// ScriptLine возвращает строку Robot Framework для проверки.
func (k *ContainsKind) ScriptLine(params map[string]string) string {
	selector := ParamOrPlaceholder(params, k.selector)
	expected := ParamOrPlaceholder(params, k.text)
	return scriptRow("Element Should Contain", cssLocator(selector), scriptArg(expected))
}
