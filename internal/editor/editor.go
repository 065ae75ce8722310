package editor

import (
	"errors"
	"fmt"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
)

// Ошибки редактора.
var (
	// ErrIndexOutOfRange — индекс вне границ списка.
	ErrIndexOutOfRange = errors.New("step index out of range")

	// ErrUnknownKind — попытка вставить шаг неизвестного типа.
	ErrUnknownKind = errors.New("unknown step kind")

	// ErrUnknownParam — ключ параметра отсутствует в схеме типа.
	ErrUnknownParam = errors.New("unknown step parameter")
)

// NoSelection — значение индекса «ничего не выбрано».
const NoSelection = -1

// Editor — редактор последовательности шагов.
//
// Держит упорядоченный список экземпляров шагов и advisory-индекс
// выделения для properties-панели. Список принадлежит редактору
// эксклюзивно; все операции синхронны и вызываются из одного владельца.
type Editor struct {
	registry *steps.Registry
	list     domain.StepList
	selected int
}

// New создаёт пустой редактор.
func New(registry *steps.Registry) *Editor {
	return &Editor{
		registry: registry,
		selected: NoSelection,
	}
}

// Load заменяет содержимое редактора списком шагов.
// Шаги неизвестных типов остаются в списке: «осиротевший» шаг — забота
// отображения и экспорта, а не повод молча выбросить данные из сценария.
// Индексы редактора всегда совпадают с индексами сохранённого списка.
// Выделение сбрасывается.
func (e *Editor) Load(list domain.StepList) {
	e.list = list.Clone()
	e.selected = NoSelection
}

// Insert вставляет новый шаг типа kind на позицию at.
// at == len(list) означает вставку в конец.
func (e *Editor) Insert(kind string, at int) (*domain.StepInstance, error) {
	k, err := e.registry.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if at < 0 || at > len(e.list) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, at)
	}

	// Параметры заводим пустыми; placeholder'ы схемы подставляются
	// на этапе выполнения.
	step := domain.NewStepInstance(k.Name(), nil)

	e.list = append(e.list, domain.StepInstance{})
	copy(e.list[at+1:], e.list[at:])
	e.list[at] = step

	// Вставка перед выделением сдвигает его на тот же логический шаг
	if e.selected != NoSelection && at <= e.selected {
		e.selected++
	}

	return &e.list[at], nil
}

// Append вставляет новый шаг в конец списка.
func (e *Editor) Append(kind string) (*domain.StepInstance, error) {
	return e.Insert(kind, len(e.list))
}

// Reorder переносит шаг с позиции from на позицию to.
// Это move (remove-then-insert), не swap. from == to — no-op.
func (e *Editor) Reorder(from, to int) error {
	if from < 0 || from >= len(e.list) {
		return fmt.Errorf("%w: from=%d", ErrIndexOutOfRange, from)
	}
	if to < 0 || to >= len(e.list) {
		return fmt.Errorf("%w: to=%d", ErrIndexOutOfRange, to)
	}
	if from == to {
		return nil
	}

	step := e.list[from]
	e.list = append(e.list[:from], e.list[from+1:]...)

	e.list = append(e.list, domain.StepInstance{})
	copy(e.list[to+1:], e.list[to:])
	e.list[to] = step

	// Выделение следует за перемещаемым шагом
	switch {
	case e.selected == NoSelection:
	case e.selected == from:
		e.selected = to
	case from < e.selected && to >= e.selected:
		e.selected--
	case from > e.selected && to <= e.selected:
		e.selected++
	}

	return nil
}

// UpdateParam устанавливает значение параметра шага по индексу.
// Ключ должен присутствовать в схеме типа шага.
func (e *Editor) UpdateParam(index int, key, value string) error {
	if index < 0 || index >= len(e.list) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	kind, err := e.registry.Get(e.list[index].Kind)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownKind, e.list[index].Kind)
	}

	for _, def := range kind.Params() {
		if def.Key == key {
			e.list[index].Params[key] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no param %q", ErrUnknownParam, kind.Name(), key)
}

// Delete удаляет шаг по индексу.
//
// Удаление выделенного шага сбрасывает выделение; удаление шага перед
// выделением сдвигает индекс, чтобы он указывал на тот же логический шаг.
func (e *Editor) Delete(index int) error {
	if index < 0 || index >= len(e.list) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	e.list = append(e.list[:index], e.list[index+1:]...)

	switch {
	case e.selected == NoSelection:
	case index == e.selected:
		e.selected = NoSelection
	case index < e.selected:
		e.selected--
	}

	return nil
}

// Select устанавливает выделение. NoSelection снимает его.
func (e *Editor) Select(index int) error {
	if index != NoSelection && (index < 0 || index >= len(e.list)) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	e.selected = index
	return nil
}

// Selected возвращает индекс выделенного шага или NoSelection.
func (e *Editor) Selected() int {
	return e.selected
}

// SelectedStep возвращает выделенный шаг или nil.
func (e *Editor) SelectedStep() *domain.StepInstance {
	if e.selected == NoSelection {
		return nil
	}
	return &e.list[e.selected]
}

// Steps возвращает копию текущего списка шагов.
func (e *Editor) Steps() domain.StepList {
	return e.list.Clone()
}

// Len возвращает число шагов.
func (e *Editor) Len() int {
	return len(e.list)
}

// Reset очищает список и выделение.
func (e *Editor) Reset() {
	e.list = nil
	e.selected = NoSelection
}
