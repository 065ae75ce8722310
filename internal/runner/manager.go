package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/mq"
	"github.com/shaiso/Scenarium/internal/pipeline"
	"github.com/shaiso/Scenarium/internal/surface"
)

// Manager супервизирует независимые runner'ы.
//
// Каждый runner — отдельная сессия выполнения со своим surface, логом
// и статусом. Менеджер гарантирует:
//   - не больше одного runner'а на сценарий (повторный Open разворачивает
//     существующий вместо создания дубликата)
//   - пайплайны работают асинхронно, их ошибки никогда не пробрасываются
//     вызывающему — только статус FAILURE и строки лога
//   - закрытие runner'а посреди запуска безопасно: завершение пайплайна
//     обнаруживает отсутствие регистрации и становится no-op
type Manager struct {
	pipeline  *pipeline.Pipeline
	surfaces  surface.Factory
	publisher *mq.Publisher
	logger    *slog.Logger
	viewport  *Viewport

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// rebindMu сериализует переключения viewport: Current/unbind/bind
	// одного maximize не перемежаются с другим.
	rebindMu sync.Mutex

	mu         sync.RWMutex
	byID       map[uuid.UUID]*Runner
	byScenario map[uuid.UUID]*Runner
	bar        []uuid.UUID // порядок трекинг-панели свёрнутых runner'ов
	stopped    bool
}

// Config — конфигурация Manager.
type Config struct {
	// Pipeline — исполнитель запусков (обязателен).
	Pipeline *pipeline.Pipeline

	// Surfaces — фабрика изолированных surface (обязательна).
	Surfaces surface.Factory

	// Publisher — публикация событий runner.finished (опционально).
	Publisher *mq.Publisher

	// Logger — логгер.
	Logger *slog.Logger
}

// NewManager создаёт Manager.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		pipeline:   cfg.Pipeline,
		surfaces:   cfg.Surfaces,
		publisher:  cfg.Publisher,
		logger:     logger,
		viewport:   NewViewport(),
		ctx:        ctx,
		cancel:     cancel,
		byID:       make(map[uuid.UUID]*Runner),
		byScenario: make(map[uuid.UUID]*Runner),
	}
}

// Viewport возвращает общую смотровую поверхность.
func (m *Manager) Viewport() *Viewport {
	return m.viewport
}

// Open запускает сценарий.
//
// Если runner для этого сценария уже существует, он разворачивается
// на передний план и возвращается — дубликат не создаётся. Иначе
// создаётся новый runner, регистрируется, разворачивается и его
// пайплайн стартует асинхронно: вызывающий не ждёт завершения.
func (m *Manager) Open(sc *domain.Scenario) (*Runner, error) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil, ErrManagerStopped
	}

	if existing, ok := m.byScenario[sc.ID]; ok {
		m.mu.Unlock()
		m.Maximize(existing.ID)
		return existing, nil
	}

	sf, err := m.surfaces()
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("create surface: %w", err)
	}

	r := newRunner(sc, sf)
	m.byID[r.ID] = r
	m.byScenario[r.ScenarioID] = r
	m.bar = append(m.bar, r.ID)
	m.mu.Unlock()

	runnersActive.Inc()
	m.logger.Info("runner opened",
		"runner_id", r.ID,
		"scenario_id", r.ScenarioID,
		"scenario", r.Name,
	)

	m.Maximize(r.ID)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.execute(r)
	}()

	return r, nil
}

// Get возвращает runner по ID.
func (m *Manager) Get(id uuid.UUID) (*Runner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
	}
	return r, nil
}

// GetByScenario возвращает runner сценария, если он существует.
func (m *Manager) GetByScenario(scenarioID uuid.UUID) (*Runner, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byScenario[scenarioID]
	return r, ok
}

// List возвращает срезы всех runner'ов в порядке трекинг-панели.
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(m.bar))
	for _, id := range m.bar {
		if r, ok := m.byID[id]; ok {
			out = append(out, r.Snapshot())
		}
	}
	return out
}

// Count возвращает число зарегистрированных runner'ов.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Maximize разворачивает runner во viewport.
//
// Все остальные runner'ы сворачиваются (их выполнение не прерывается),
// накопленный лог выбранного реплеится в сток viewport'а.
func (m *Manager) Maximize(id uuid.UUID) error {
	m.rebindMu.Lock()
	defer m.rebindMu.Unlock()

	m.mu.Lock()
	r, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
	}

	var prev *Runner
	if prevID, bound := m.viewport.Current(); bound && prevID != id {
		prev = m.byID[prevID]
	}

	for _, other := range m.byID {
		other.setMinimized(other.ID != id)
	}
	m.mu.Unlock()

	if prev != nil {
		m.viewport.unbind(prev)
	}
	m.viewport.bind(r)
	return nil
}

// Minimize сворачивает runner. Если он был привязан ко viewport,
// viewport переходит в состояние «ничего не показано».
// Фоновое выполнение не затрагивается.
func (m *Manager) Minimize(id uuid.UUID) error {
	m.mu.RLock()
	r, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
	}

	r.setMinimized(true)

	m.rebindMu.Lock()
	m.viewport.unbind(r)
	m.rebindMu.Unlock()
	return nil
}

// MinimizeCurrent сворачивает привязанный ко viewport runner, если есть.
func (m *Manager) MinimizeCurrent() {
	if id, bound := m.viewport.Current(); bound {
		_ = m.Minimize(id)
	}
}

// Rerun перезапускает пайплайн runner'а.
//
// Если запуск уже идёт (executing-лок занят), вызов — no-op, не очередь.
// Иначе лог и статус сбрасываются и пайплайн стартует заново.
func (m *Manager) Rerun(id uuid.UUID) error {
	m.mu.RLock()
	if m.stopped {
		m.mu.RUnlock()
		return ErrManagerStopped
	}
	r, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.execute(r)
	}()
	return nil
}

// Close закрывает runner: освобождает surface, убирает его из реестра
// и с трекинг-панели. Если закрывается развёрнутый runner, viewport
// переходит в состояние «ничего не показано».
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	r, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRunnerNotFound, id)
	}

	delete(m.byID, id)
	delete(m.byScenario, r.ScenarioID)
	for i, barID := range m.bar {
		if barID == id {
			m.bar = append(m.bar[:i], m.bar[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.viewport.unbind(r)
	if err := r.releaseSurface(); err != nil {
		m.logger.Warn("release surface", "runner_id", id, "error", err)
	}

	runnersActive.Dec()
	m.logger.Info("runner closed", "runner_id", id, "scenario_id", r.ScenarioID)
	return nil
}

// Shutdown закрывает все runner'ы и дожидается завершения пайплайнов.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.stopped = true
	ids := make([]uuid.UUID, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Close(id)
	}

	m.cancel()
	m.wg.Wait()
	m.logger.Info("runner manager stopped")
}

// execute выполняет один запуск пайплайна runner'а.
//
// Повторный вызов при занятом executing-локе — no-op. Если runner был
// закрыт, пока пайплайн работал, завершение молча выбрасывается.
func (m *Manager) execute(r *Runner) {
	if !r.beginRun() {
		return
	}

	runsStarted.Inc()
	logger := m.logger.With("runner_id", r.ID, "scenario_id", r.ScenarioID)
	logger.Info("run started", "steps", len(r.Steps))

	viewed := func() bool { return m.viewport.IsBound(r.ID) }
	status := m.pipeline.Run(m.ctx, r.surface, r.Bundle, r.Steps, r.Log, viewed)

	r.endRun(status)

	// Runner могли закрыть посреди запуска — тогда завершение никому
	// не интересно: ни событий, ни метрик.
	m.mu.RLock()
	_, registered := m.byID[r.ID]
	m.mu.RUnlock()
	if !registered {
		return
	}

	runsFinished.WithLabelValues(string(status)).Inc()
	logger.Info("run finished", "status", status)

	if m.publisher != nil {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := m.publisher.PublishRunnerFinished(pubCtx, mq.RunnerFinishedPayload{
			RunnerID:   r.ID,
			ScenarioID: r.ScenarioID,
			Status:     string(status),
		})
		if err != nil {
			logger.Warn("publish runner.finished", "error", err)
		}
	}
}
