package runner

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/pipeline"
	"github.com/shaiso/Scenarium/internal/surface"
)

// Runner — одна независимая сессия выполнения сценария.
//
// Runner владеет собственным surface (никогда не разделяется с другими),
// буфером лога и статусом. Флаг minimized ортогонален статусу: выполнение
// в фоне продолжается независимо от того, развёрнут runner во viewport
// или нет.
type Runner struct {
	// ID — уникальный идентификатор runner'а.
	ID uuid.UUID

	// ScenarioID — идентичность субъекта: на один сценарий —
	// не больше одного живого runner'а.
	ScenarioID uuid.UUID

	// Name — имя сценария на момент запуска.
	Name string

	// Bundle — снимок сайта, зафиксированный при открытии.
	Bundle domain.SiteBundle

	// Steps — копия списка шагов, зафиксированная при открытии.
	Steps domain.StepList

	// Log — буфер лога запуска.
	Log *pipeline.Log

	surface surface.Surface

	mu         sync.Mutex
	status     domain.RunnerStatus
	minimized  bool
	executing  bool
	startedAt  *time.Time
	finishedAt *time.Time
	createdAt  time.Time
}

// newRunner создаёт runner для сценария.
func newRunner(sc *domain.Scenario, sf surface.Surface) *Runner {
	return &Runner{
		ID:         uuid.New(),
		ScenarioID: sc.ID,
		Name:       sc.Name,
		Bundle:     sc.Bundle,
		Steps:      sc.Steps.Clone(),
		Log:        pipeline.NewLog(),
		surface:    sf,
		status:     domain.RunnerStatusCreated,
		createdAt:  time.Now(),
	}
}

// Status возвращает текущий статус.
func (r *Runner) Status() domain.RunnerStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Minimized возвращает true, если runner свёрнут.
func (r *Runner) Minimized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minimized
}

// Executing возвращает true, пока пайплайн держит executing-лок.
func (r *Runner) Executing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.executing
}

// beginRun пытается взять executing-лок.
// false означает, что запуск уже идёт — вызывающий делает no-op.
func (r *Runner) beginRun() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.executing {
		return false
	}
	r.executing = true

	now := time.Now()
	r.status = domain.RunnerStatusRunning
	r.startedAt = &now
	r.finishedAt = nil
	return true
}

// endRun снимает executing-лок и фиксирует финальный статус.
func (r *Runner) endRun(status domain.RunnerStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.executing = false
	r.status = status
	r.finishedAt = &now
}

// setMinimized выставляет флаг свёрнутости.
func (r *Runner) setMinimized(min bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.minimized = min
}

// releaseSurface освобождает surface при закрытии runner'а.
func (r *Runner) releaseSurface() error {
	return r.surface.Close()
}

// Snapshot — неизменяемый срез состояния runner'а для API и CLI.
type Snapshot struct {
	ID         uuid.UUID           `json:"id"`
	ScenarioID uuid.UUID           `json:"scenario_id"`
	Name       string              `json:"name"`
	Status     domain.RunnerStatus `json:"status"`
	Minimized  bool                `json:"minimized"`
	Executing  bool                `json:"executing"`
	StepCount  int                 `json:"step_count"`
	LogLines   int                 `json:"log_lines"`
	StartedAt  *time.Time          `json:"started_at,omitempty"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Snapshot возвращает срез состояния.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ID:         r.ID,
		ScenarioID: r.ScenarioID,
		Name:       r.Name,
		Status:     r.status,
		Minimized:  r.minimized,
		Executing:  r.executing,
		StepCount:  len(r.Steps),
		LogLines:   r.Log.Len(),
		StartedAt:  r.startedAt,
		FinishedAt: r.finishedAt,
		CreatedAt:  r.createdAt,
	}
}
