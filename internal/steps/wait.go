package steps

import (
	"context"
	"fmt"
	"time"
)

// KindWaitForElement — имя типа шага ожидания.
const KindWaitForElement = "wait_for_element"

// Параметры опроса.
const (
	// defaultWaitTimeoutMs — таймаут ожидания по умолчанию.
	defaultWaitTimeoutMs = 5000

	// pollInterval — период опроса селектора.
	pollInterval = 100 * time.Millisecond
)

// WaitKind — ожидание появления элемента.
//
// Опрашивает селектор каждые 100мс, пока элемент не появится
// или не истечёт таймаут (параметр timeout_ms, по умолчанию 5000).
type WaitKind struct {
	selector ParamDef
	timeout  ParamDef
}

// NewWaitKind создаёт WaitKind.
func NewWaitKind() *WaitKind {
	return &WaitKind{
		selector: ParamDef{
			Key:         "selector",
			Label:       "Селектор",
			Input:       "text",
			Placeholder: "#loaded",
		},
		timeout: ParamDef{
			Key:         "timeout_ms",
			Label:       "Таймаут, мс",
			Input:       "number",
			Placeholder: "5000",
		},
	}
}

// Name возвращает имя типа.
func (k *WaitKind) Name() string { return KindWaitForElement }

// Title возвращает имя для редактора.
func (k *WaitKind) Title() string { return "Wait For Element" }

// Description возвращает описание типа.
func (k *WaitKind) Description() string {
	return "Ждёт появления элемента по CSS-селектору"
}

// Icon возвращает имя иконки.
func (k *WaitKind) Icon() string { return "hourglass" }

// Params возвращает схему параметров.
func (k *WaitKind) Params() []ParamDef {
	return []ParamDef{k.selector, k.timeout}
}

// Execute опрашивает селектор до появления элемента или таймаута.
func (k *WaitKind) Execute(ctx context.Context, req *Request) error {
	selector := ParamOrPlaceholder(req.Params, k.selector)
	timeout := time.Duration(ParamInt(req.Params, k.timeout, defaultWaitTimeoutMs)) * time.Millisecond

	// Таймер и тикер останавливаются на любом пути выхода,
	// чтобы не выстрелить по уже завершённому запуску.
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		n, err := req.Surface.Count(ctx, selector)
		if err != nil {
			return fmt.Errorf("query %s: %w", selector, err)
		}
		if n > 0 {
			req.Logf("element %s appeared", selector)
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case <-deadline.C:
			return fmt.Errorf("%w: element %s did not appear within %s",
				ErrWaitTimeout, selector, timeout)
		case <-ticker.C:
			// следующая итерация опроса
		}
	}
}

// ScriptLine возвращает строку Robot Framework для ожидания.
func (k *WaitKind) ScriptLine(params map[string]string) string {
	selector := ParamOrPlaceholder(params, k.selector)
	timeout := time.Duration(ParamInt(params, k.timeout, defaultWaitTimeoutMs)) * time.Millisecond
	return scriptRow("Wait Until Page Contains Element", cssLocator(selector),
		fmt.Sprintf("timeout=%s", timeout))
}
