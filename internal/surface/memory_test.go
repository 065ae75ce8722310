package surface

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const page = `<html><body>
	<button id="go" class="primary">Go</button>
	<input id="email" type="text">
	<textarea id="note"></textarea>
	<div class="row">a</div>
	<div class="row">b</div>
	<p id="msg">Order <b>confirmed</b></p>
</body></html>`

func loaded(t *testing.T) *MemorySurface {
	t.Helper()
	s := NewMemorySurface()
	if err := s.Load(context.Background(), page); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestCount(t *testing.T) {
	s := loaded(t)

	n, err := s.Count(context.Background(), ".row")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	n, err = s.Count(context.Background(), "#missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestCount_BadSelector(t *testing.T) {
	s := loaded(t)

	if _, err := s.Count(context.Background(), "[[["); !errors.Is(err, ErrBadSelector) {
		t.Fatalf("err = %v, want ErrBadSelector", err)
	}
}

func TestCount_NotLoaded(t *testing.T) {
	s := NewMemorySurface()

	if _, err := s.Count(context.Background(), "#go"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestClick_RecordsEvent(t *testing.T) {
	s := loaded(t)

	if err := s.Click(context.Background(), "#go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if !strings.Contains(events[0], "click") || !strings.Contains(events[0], "#go") {
		t.Errorf("unexpected event: %q", events[0])
	}
}

func TestClick_NoMatch(t *testing.T) {
	s := loaded(t)

	if err := s.Click(context.Background(), "#missing"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if len(s.Events()) != 0 {
		t.Error("failed click must not record an event")
	}
}

func TestSetValue(t *testing.T) {
	s := loaded(t)

	if err := s.SetValue(context.Background(), "#email", "user@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// textarea получает и value, и текстовое содержимое
	if err := s.SetValue(context.Background(), "#note", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := s.Text(context.Background(), "#note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("textarea text = %q, want %q", text, "hello")
	}
}

func TestText_Nested(t *testing.T) {
	s := loaded(t)

	text, err := s.Text(context.Background(), "#msg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Order") || !strings.Contains(text, "confirmed") {
		t.Errorf("text = %q, want nested content included", text)
	}
}

func TestLoad_ReplacesDocumentAndEvents(t *testing.T) {
	s := loaded(t)
	_ = s.Click(context.Background(), "#go")

	if err := s.Load(context.Background(), `<html><body><span id="only"></span></body></html>`); err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(s.Events()) != 0 {
		t.Error("reload must clear the event journal")
	}
	if _, err := s.Count(context.Background(), "#go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := s.Count(context.Background(), "#go")
	if n != 0 {
		t.Error("old document must be gone after reload")
	}
}

func TestClosedSurface(t *testing.T) {
	s := loaded(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := s.Load(context.Background(), page); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if _, err := s.Count(context.Background(), "#go"); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}
