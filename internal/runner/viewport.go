package runner

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/pipeline"
)

// Viewport — единственная общая «смотровая» поверхность.
//
// В каждый момент ко viewport привязан не больше одного runner'а;
// привязка переключается операциями maximize/minimize менеджера,
// не трогая фоновое выполнение остальных. При привязке накопленный лог
// runner'а реплеится в сток, дальше строки идут вживую.
type Viewport struct {
	mu      sync.Mutex
	current uuid.UUID
	bound   bool
	sink    func(pipeline.Entry)
}

// NewViewport создаёт непривязанный viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetSink устанавливает живой сток строк лога (например, SSE-поток API).
// nil допустим — состояние привязки при этом сохраняется.
func (v *Viewport) SetSink(fn func(pipeline.Entry)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sink = fn
}

// Current возвращает ID привязанного runner'а.
func (v *Viewport) Current() (uuid.UUID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.bound
}

// IsBound проверяет, привязан ли runner с данным ID.
func (v *Viewport) IsBound(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bound && v.current == id
}

// bind привязывает runner и реплеит его буфер в сток.
func (v *Viewport) bind(r *Runner) {
	v.mu.Lock()
	v.current = r.ID
	v.bound = true
	v.mu.Unlock()

	id := r.ID
	r.Log.SetMirror(func(e pipeline.Entry) { v.emit(id, e) })
}

// unbind отвязывает runner, если привязан именно он.
// Viewport возвращается в состояние «ничего не показано».
func (v *Viewport) unbind(r *Runner) {
	v.mu.Lock()
	if !v.bound || v.current != r.ID {
		v.mu.Unlock()
		return
	}
	v.bound = false
	v.mu.Unlock()

	r.Log.SetMirror(nil)
}

// emit пересылает строку в сток, если runner с данным ID всё ещё
// привязан. Зеркало отвязанного runner'а может пережить переключение —
// его строки до стока не доходят.
func (v *Viewport) emit(id uuid.UUID, e pipeline.Entry) {
	v.mu.Lock()
	sink := v.sink
	live := v.bound && v.current == id
	v.mu.Unlock()

	if live && sink != nil {
		sink(e)
	}
}
