package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// Entry — одна строка лога запуска с отметкой времени.
type Entry struct {
	Time time.Time `json:"time"`
	Line string    `json:"line"`
}

// Log — буфер лога одного runner'а.
//
// Во время запуска буфер append-only: строки добавляются по мере
// выполнения, так что наблюдатель видит прогресс инкрементально.
// Перед повторным запуском буфер очищается.
//
// Зеркало (mirror) — опциональный сток для живого просмотра: при
// установке ему реплеится всё накопленное, затем каждая новая строка.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	mirror  func(Entry)
}

// NewLog создаёт пустой буфер.
func NewLog() *Log {
	return &Log{}
}

// Append добавляет строку с текущей отметкой времени.
func (l *Log) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{Time: time.Now(), Line: line}
	l.entries = append(l.entries, e)
	if l.mirror != nil {
		l.mirror(e)
	}
}

// Appendf добавляет форматированную строку.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// Entries возвращает копию накопленных строк.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len возвращает число строк в буфере.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear очищает буфер. Зеркало при этом сохраняется.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// SetMirror устанавливает живой сток. Накопленные строки реплеятся
// немедленно, дальше зеркало получает каждую новую строку.
// nil отключает зеркало.
func (l *Log) SetMirror(fn func(Entry)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.mirror = fn
	if fn == nil {
		return
	}
	for _, e := range l.entries {
		fn(e)
	}
}
