package runner

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/pipeline"
	"github.com/shaiso/Scenarium/internal/steps"
	"github.com/shaiso/Scenarium/internal/surface"
)

func newManager() *Manager {
	return NewManager(Config{
		Pipeline: pipeline.New(pipeline.Config{
			Registry:  steps.DefaultRegistry(),
			StepDelay: -1, // без пауз в тестах
		}),
		Surfaces: surface.MemoryFactory,
	})
}

func clickScenario(name string) *domain.Scenario {
	now := time.Now()
	return &domain.Scenario{
		ID:        uuid.New(),
		Name:      name,
		Bundle:    domain.NewSiteBundle(`<html><body><button id='go'>Go</button></body></html>`),
		Steps:     domain.StepList{domain.NewStepInstance(steps.KindClickElement, map[string]string{"selector": "#go"})},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// waitScenario — сценарий, чей запуск длится примерно timeoutMS миллисекунд:
// элемент #never не появится, wait-шаг досидит до таймаута.
func waitScenario(timeoutMS string) *domain.Scenario {
	sc := clickScenario("slow")
	sc.Steps = domain.StepList{domain.NewStepInstance(steps.KindWaitForElement, map[string]string{
		"selector":   "#never",
		"timeout_ms": timeoutMS,
	})}
	return sc
}

// waitUntil ждёт выполнения условия, не дольше секунды.
func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting: %s", what)
}

func TestOpen_RunsToSuccess(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	r, err := m.Open(clickScenario("checkout"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitUntil(t, "run success", func() bool {
		return r.Status() == domain.RunnerStatusSuccess
	})

	snap := r.Snapshot()
	if snap.Minimized {
		t.Error("freshly opened runner should be maximized")
	}
	if snap.LogLines == 0 {
		t.Error("expected log lines after run")
	}
}

func TestOpen_ExistingScenarioIsReused(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	sc := clickScenario("checkout")
	first, err := m.Open(sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = m.Minimize(first.ID)

	second, err := m.Open(sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Error("open for the same scenario must reuse the existing runner")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 runner, got %d", m.Count())
	}
	if second.Minimized() {
		t.Error("reused runner should be maximized")
	}
}

func TestOpen_DifferentScenariosGetOwnRunners(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	a, _ := m.Open(clickScenario("a"))
	b, _ := m.Open(clickScenario("b"))

	if a.ID == b.ID {
		t.Fatal("different scenarios must get different runners")
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 runners, got %d", m.Count())
	}

	// Последний открытый развёрнут, остальные свёрнуты.
	if !a.Minimized() {
		t.Error("first runner should be minimized after second open")
	}
	if b.Minimized() {
		t.Error("last opened runner should be maximized")
	}
	if id, bound := m.Viewport().Current(); !bound || id != b.ID {
		t.Error("viewport should show the last opened runner")
	}
}

func TestClose_RemovesFromRegistryAndBar(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	sc := clickScenario("checkout")
	first, _ := m.Open(sc)
	waitUntil(t, "run finished", func() bool { return !first.Executing() && first.Status().IsTerminal() })

	if err := m.Close(first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Count() != 0 {
		t.Errorf("expected empty registry, got %d", m.Count())
	}
	if len(m.List()) != 0 {
		t.Error("expected empty bar after close")
	}
	if _, err := m.Get(first.ID); err == nil {
		t.Error("closed runner should not be found")
	}
	if _, bound := m.Viewport().Current(); bound {
		t.Error("viewport should be empty after closing the shown runner")
	}

	// Повторный запуск того же сценария — уже новый runner с чистым логом.
	second, err := m.Open(sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID == first.ID {
		t.Error("reopen after close must create a fresh runner")
	}
}

func TestRerun_NoOpWhileExecuting(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	r, _ := m.Open(waitScenario("300"))
	waitUntil(t, "run started", func() bool { return r.Executing() })

	// Повторные запросы во время выполнения глотаются, не встают в очередь.
	for i := 0; i < 3; i++ {
		if err := m.Rerun(r.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	waitUntil(t, "run finished", func() bool { return !r.Executing() && r.Status().IsTerminal() })
	time.Sleep(50 * time.Millisecond)

	if r.Executing() {
		t.Error("ignored reruns must not start after the run finishes")
	}
	aborted := 0
	for _, e := range r.Log.Entries() {
		if strings.Contains(e.Line, "run aborted") {
			aborted++
		}
	}
	if aborted != 1 {
		t.Errorf("expected exactly one run, found %d aborted markers", aborted)
	}
}

func TestRerun_AfterCompletionStartsFresh(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	r, _ := m.Open(clickScenario("checkout"))
	waitUntil(t, "first run", func() bool { return r.Status() == domain.RunnerStatusSuccess })
	firstLines := r.Log.Len()

	if err := m.Rerun(r.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitUntil(t, "second run", func() bool {
		return !r.Executing() && r.Status() == domain.RunnerStatusSuccess
	})

	// Лог перезапуска начинается заново, а не дописывается.
	if got := r.Log.Len(); got != firstLines {
		t.Errorf("rerun log length = %d, want %d", got, firstLines)
	}
}

func TestClose_MidFlightIsSafe(t *testing.T) {
	m := newManager()

	r, _ := m.Open(waitScenario("300"))
	waitUntil(t, "run started", func() bool { return r.Executing() })

	if err := m.Close(r.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("expected empty registry, got %d", m.Count())
	}

	// Shutdown дожидается осиротевшего пайплайна; он завершается молча.
	m.Shutdown()
}

func TestMaximize_SwitchesViewport(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	a, _ := m.Open(clickScenario("a"))
	b, _ := m.Open(clickScenario("b"))
	waitUntil(t, "runs finished", func() bool {
		return a.Status().IsTerminal() && b.Status().IsTerminal()
	})

	var seen []string
	m.Viewport().SetSink(func(e pipeline.Entry) {
		seen = append(seen, e.Line)
	})

	if err := m.Maximize(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !b.Minimized() {
		t.Error("previously shown runner should be minimized")
	}
	if a.Minimized() {
		t.Error("maximized runner should not be minimized")
	}
	if id, bound := m.Viewport().Current(); !bound || id != a.ID {
		t.Error("viewport should show the maximized runner")
	}

	// Привязка реплеит накопленный лог.
	if len(seen) != a.Log.Len() {
		t.Errorf("replayed %d lines, want %d", len(seen), a.Log.Len())
	}
}

func TestMaximize_ConcurrentCallsKeepSingleBinding(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	a, _ := m.Open(clickScenario("a"))
	b, _ := m.Open(clickScenario("b"))
	waitUntil(t, "runs finished", func() bool {
		return a.Status().IsTerminal() && b.Status().IsTerminal()
	})

	var mu sync.Mutex
	var seen []string
	m.Viewport().SetSink(func(e pipeline.Entry) {
		mu.Lock()
		seen = append(seen, e.Line)
		mu.Unlock()
	})

	// Гонка maximize из параллельных обработчиков
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		id := a.ID
		if i%2 == 1 {
			id = b.ID
		}
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = m.Maximize(id)
		}(id)
	}
	wg.Wait()

	current, bound := m.Viewport().Current()
	if !bound {
		t.Fatal("viewport should stay bound after concurrent maximize")
	}

	winner, loser := a, b
	if current == b.ID {
		winner, loser = b, a
	}

	// В сток попадают только строки привязанного runner'а.
	mu.Lock()
	seen = nil
	mu.Unlock()

	loser.Log.Append("stale line")
	winner.Log.Append("live line")

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "live line" {
		t.Errorf("sink should receive only the bound runner's lines, got %v", seen)
	}
}

func TestMinimize_DoesNotStopExecution(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	r, _ := m.Open(waitScenario("200"))
	waitUntil(t, "run started", func() bool { return r.Executing() })

	if err := m.Minimize(r.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, bound := m.Viewport().Current(); bound {
		t.Error("viewport should be empty after minimize")
	}

	waitUntil(t, "run finished", func() bool { return r.Status().IsTerminal() })
	if r.Status() != domain.RunnerStatusFailure {
		t.Errorf("status = %s, want FAILURE", r.Status())
	}
}

func TestGet_UnknownRunner(t *testing.T) {
	m := newManager()
	defer m.Shutdown()

	if _, err := m.Get(uuid.New()); err == nil {
		t.Fatal("expected error for unknown runner")
	}
	if err := m.Maximize(uuid.New()); err == nil {
		t.Fatal("expected error for unknown runner")
	}
	if err := m.Close(uuid.New()); err == nil {
		t.Fatal("expected error for unknown runner")
	}
}

func TestShutdown_RejectsNewRunners(t *testing.T) {
	m := newManager()
	m.Shutdown()

	if _, err := m.Open(clickScenario("late")); err != ErrManagerStopped {
		t.Fatalf("err = %v, want ErrManagerStopped", err)
	}
}
