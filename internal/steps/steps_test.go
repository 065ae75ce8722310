package steps

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/Scenarium/internal/surface"
)

// loadedSurface возвращает MemorySurface с загруженным документом.
func loadedSurface(t *testing.T, doc string) *surface.MemorySurface {
	t.Helper()

	s := surface.NewMemorySurface()
	if err := s.Load(context.Background(), doc); err != nil {
		t.Fatalf("load document: %v", err)
	}
	return s
}

func newRequest(s surface.Surface, params map[string]string, log *[]string) *Request {
	return &Request{
		Params:  params,
		Surface: s,
		Log: func(line string) {
			*log = append(*log, line)
		},
	}
}

// --- Registry ---

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{
		KindClickElement,
		KindInputText,
		KindElementShouldContain,
		KindWaitForElement,
	} {
		if !r.Has(name) {
			t.Errorf("default registry should contain %s", name)
		}
	}
	if r.Count() != 4 {
		t.Errorf("expected 4 kinds, got %d", r.Count())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Get("teleport")
	if !errors.Is(err, ErrKindNotFound) {
		t.Errorf("expected ErrKindNotFound, got %v", err)
	}
}

func TestRegistry_ExecuteAndScriptShareParamKeys(t *testing.T) {
	// Инвариант каталога: у каждого типа ключи параметров уникальны
	// и схема не пуста.
	for _, kind := range DefaultRegistry().Kinds() {
		seen := map[string]bool{}
		if len(kind.Params()) == 0 {
			t.Errorf("%s: empty param schema", kind.Name())
		}
		for _, def := range kind.Params() {
			if seen[def.Key] {
				t.Errorf("%s: duplicate param key %s", kind.Name(), def.Key)
			}
			seen[def.Key] = true
		}
	}
}

// --- Click Element ---

func TestClick_Success(t *testing.T) {
	s := loadedSurface(t, `<html><body><button id="go">Go</button></body></html>`)
	var log []string

	kind := NewClickKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{"selector": "#go"}, &log))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log) != 1 || !strings.Contains(log[0], "#go") {
		t.Errorf("log should confirm the click, got %v", log)
	}

	events := s.Events()
	if len(events) != 1 || !strings.HasPrefix(events[0], "click") {
		t.Errorf("surface should record the click, got %v", events)
	}
}

func TestClick_ElementNotFound(t *testing.T) {
	s := loadedSurface(t, `<html><body></body></html>`)
	var log []string

	kind := NewClickKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{"selector": "#missing"}, &log))

	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "#missing") {
		t.Errorf("error should name the selector, got %v", err)
	}
}

// --- Input Text ---

func TestInput_SetsValue(t *testing.T) {
	s := loadedSurface(t, `<html><body><input id="login"></body></html>`)
	var log []string

	kind := NewInputKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector": "#login",
		"text":     "admin",
	}, &log))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := s.Events()
	if len(events) != 1 || !strings.HasPrefix(events[0], "input") {
		t.Errorf("surface should record the input, got %v", events)
	}
}

func TestInput_ElementNotFound(t *testing.T) {
	s := loadedSurface(t, `<html><body></body></html>`)
	var log []string

	kind := NewInputKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector": "#nope",
		"text":     "x",
	}, &log))

	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

// --- Element Should Contain ---

func TestContains_Substring(t *testing.T) {
	s := loadedSurface(t, `<html><body><div id="msg">operation ok, proceed</div></body></html>`)
	var log []string

	kind := NewContainsKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector": "#msg",
		"text":     "ok",
	}, &log))

	// Подстрочное совпадение, не равенство
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContains_AssertionFailed(t *testing.T) {
	s := loadedSurface(t, `<html><body><div id="msg">nope</div></body></html>`)
	var log []string

	kind := NewContainsKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector": "#msg",
		"text":     "ok",
	}, &log))

	if !errors.Is(err, ErrAssertionFailed) {
		t.Fatalf("expected ErrAssertionFailed, got %v", err)
	}
}

func TestContains_ElementNotFound(t *testing.T) {
	s := loadedSurface(t, `<html><body></body></html>`)
	var log []string

	kind := NewContainsKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector": "#gone",
		"text":     "ok",
	}, &log))

	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

// --- Wait For Element ---

func TestWait_ElementAlreadyPresent(t *testing.T) {
	s := loadedSurface(t, `<html><body><div id="done"></div></body></html>`)
	var log []string

	kind := NewWaitKind()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector":   "#done",
		"timeout_ms": "1000",
	}, &log))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWait_Timeout(t *testing.T) {
	s := loadedSurface(t, `<html><body></body></html>`)
	var log []string

	kind := NewWaitKind()
	start := time.Now()
	err := kind.Execute(context.Background(), newRequest(s, map[string]string{
		"selector":   "#late",
		"timeout_ms": "200",
	}, &log))
	elapsed := time.Since(start)

	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	// таймаут 200мс ± гранулярность опроса
	if elapsed < 150*time.Millisecond || elapsed > 600*time.Millisecond {
		t.Errorf("wait should take about 200ms, took %s", elapsed)
	}
}

func TestWait_InvalidTimeoutFallsBack(t *testing.T) {
	params := map[string]string{"timeout_ms": "not-a-number"}
	def := NewWaitKind().timeout

	if got := ParamInt(params, def, defaultWaitTimeoutMs); got != defaultWaitTimeoutMs {
		t.Errorf("invalid timeout should fall back to default, got %d", got)
	}
}

// --- ScriptLine ---

func TestScriptLines(t *testing.T) {
	tests := []struct {
		kind   Kind
		params map[string]string
		want   string
	}{
		{
			kind:   NewClickKind(),
			params: map[string]string{"selector": "#a"},
			want:   "    Click Element    css=#a",
		},
		{
			kind:   NewContainsKind(),
			params: map[string]string{"selector": "#b", "text": "ok"},
			want:   "    Element Should Contain    css=#b    ok",
		},
		{
			kind:   NewInputKind(),
			params: map[string]string{"selector": "#f", "text": "hello"},
			want:   "    Input Text    css=#f    hello",
		},
		{
			kind:   NewWaitKind(),
			params: map[string]string{"selector": "#late", "timeout_ms": "5000"},
			want:   "    Wait Until Page Contains Element    css=#late    timeout=5s",
		},
	}

	for _, tt := range tests {
		if got := tt.kind.ScriptLine(tt.params); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.kind.Name(), got, tt.want)
		}
	}
}

func TestScriptLine_MultilineText(t *testing.T) {
	kind := NewInputKind()
	line := kind.ScriptLine(map[string]string{
		"selector": "#comment",
		"text":     "first\nsecond\nthird",
	})

	lines := strings.Split(line, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 physical lines, got %d: %q", len(lines), line)
	}
	// каждая continuation-строка с отступом под "..."
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "    ...    ") {
			t.Errorf("continuation line should be indented: %q", l)
		}
	}
}
