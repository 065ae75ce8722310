package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Registry — реестр типов шагов.
//
// Позволяет регистрировать и получать реализации Kind по имени.
// Потокобезопасен; после старта сервиса реестр только читается,
// в том числе несколькими пайплайнами одновременно.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
	order []string
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// DefaultRegistry создаёт реестр со всеми встроенными типами шагов.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Регистрируем встроенные типы
	r.Register(NewClickKind())
	r.Register(NewInputKind())
	r.Register(NewContainsKind())
	r.Register(NewWaitKind())

	return r
}

// Register регистрирует тип шага.
// Тип с тем же именем перезаписывается.
func (r *Registry) Register(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[kind.Name()]; !exists {
		r.order = append(r.order, kind.Name())
	}
	r.kinds[kind.Name()] = kind
}

// Get возвращает тип шага по имени.
// Возвращает ErrKindNotFound, если тип не зарегистрирован.
func (r *Registry) Get(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, exists := r.kinds[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrKindNotFound, name)
	}
	return kind, nil
}

// Has проверяет, зарегистрирован ли тип.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.kinds[name]
	return exists
}

// Names возвращает отсортированный список имён типов.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds возвращает типы в порядке регистрации (порядок каталога в редакторе).
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.kinds[name])
	}
	return out
}

// Count возвращает количество зарегистрированных типов.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kinds)
}
