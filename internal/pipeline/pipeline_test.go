package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
	"github.com/shaiso/Scenarium/internal/surface"
)

func newPipeline() *Pipeline {
	return New(Config{
		Registry:  steps.DefaultRegistry(),
		StepDelay: -1, // без пауз в тестах
	})
}

func logText(log *Log) string {
	var b strings.Builder
	for _, e := range log.Entries() {
		b.WriteString(e.Line)
		b.WriteString("\n")
	}
	return b.String()
}

func clickStep(selector string) domain.StepInstance {
	return domain.NewStepInstance(steps.KindClickElement, map[string]string{"selector": selector})
}

func TestRun_ClickSuccess(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body><button id='go'>Go</button></body></html>`)
	list := domain.StepList{clickStep("#go")}

	status := p.Run(context.Background(), sf, bundle, list, log, nil)

	if status != domain.RunnerStatusSuccess {
		t.Fatalf("expected SUCCESS, got %s\nlog:\n%s", status, logText(log))
	}
	text := logText(log)
	if !strings.Contains(text, "running step 1/1: Click Element") {
		t.Errorf("log should announce the step, got:\n%s", text)
	}
	if !strings.Contains(text, "clicked element #go") {
		t.Errorf("log should confirm the click, got:\n%s", text)
	}
	if !strings.Contains(text, "run finished successfully") {
		t.Errorf("log should report success, got:\n%s", text)
	}
}

func TestRun_ClickMissingElement(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body><button id='go'>Go</button></body></html>`)
	list := domain.StepList{clickStep("#missing")}

	status := p.Run(context.Background(), sf, bundle, list, log, nil)

	if status != domain.RunnerStatusFailure {
		t.Fatalf("expected FAILURE, got %s", status)
	}
	text := logText(log)
	if !strings.Contains(text, "element not found: #missing") {
		t.Errorf("log should name the missing selector, got:\n%s", text)
	}
	if !strings.Contains(text, "run aborted") {
		t.Errorf("log should report the abort, got:\n%s", text)
	}
}

func TestRun_NoMarkup(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	status := p.Run(context.Background(), sf, domain.SiteBundle{}, domain.StepList{}, log, nil)

	if status != domain.RunnerStatusFailure {
		t.Fatalf("expected FAILURE for empty bundle, got %s", status)
	}
	if !strings.Contains(logText(log), "no content to render") {
		t.Errorf("log should explain the build failure, got:\n%s", logText(log))
	}
}

func TestRun_UnknownStepKind(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body></body></html>`)
	list := domain.StepList{
		domain.NewStepInstance("teleport", nil),
		clickStep("#never"), // не должен выполниться
	}

	status := p.Run(context.Background(), sf, bundle, list, log, nil)

	if status != domain.RunnerStatusFailure {
		t.Fatalf("expected FAILURE, got %s", status)
	}
	text := logText(log)
	if !strings.Contains(text, `unknown step kind "teleport"`) {
		t.Errorf("log should name the unknown kind, got:\n%s", text)
	}
	if strings.Contains(text, "running step 2/2") {
		t.Errorf("steps after the failure must not run, got:\n%s", text)
	}
}

func TestRun_StopsOnFirstFailure(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body><button id='a'>A</button><button id='b'>B</button></body></html>`)
	list := domain.StepList{
		clickStep("#a"),
		clickStep("#missing"),
		clickStep("#b"),
	}

	status := p.Run(context.Background(), sf, bundle, list, log, nil)

	if status != domain.RunnerStatusFailure {
		t.Fatalf("expected FAILURE, got %s", status)
	}

	// Выполнен строгий префикс: шаг 1 и упавший шаг 2, шаг 3 — нет.
	events := sf.Events()
	if len(events) != 1 {
		t.Errorf("only the first click should have happened, got %v", events)
	}
	if strings.Contains(logText(log), "running step 3/3") {
		t.Errorf("step 3 must not start after step 2 failed:\n%s", logText(log))
	}
}

func TestRun_WaitTimeout(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body></body></html>`)
	list := domain.StepList{
		domain.NewStepInstance(steps.KindWaitForElement, map[string]string{
			"selector":   "#late",
			"timeout_ms": "200",
		}),
	}

	start := time.Now()
	status := p.Run(context.Background(), sf, bundle, list, log, nil)
	elapsed := time.Since(start)

	if status != domain.RunnerStatusFailure {
		t.Fatalf("expected FAILURE, got %s", status)
	}
	if !strings.Contains(logText(log), "wait timeout") {
		t.Errorf("log should report the timeout, got:\n%s", logText(log))
	}
	if elapsed < 150*time.Millisecond || elapsed > 600*time.Millisecond {
		t.Errorf("run should fail after about 200ms, took %s", elapsed)
	}
}

func TestRun_RerunClearsLog(t *testing.T) {
	p := newPipeline()
	sf := surface.NewMemorySurface()
	log := NewLog()

	bundle := domain.NewSiteBundle(`<html><body><button id='go'>Go</button></body></html>`)
	list := domain.StepList{clickStep("#go")}

	p.Run(context.Background(), sf, bundle, list, log, nil)
	first := log.Len()

	p.Run(context.Background(), sf, bundle, list, log, nil)
	second := log.Len()

	if second != first {
		t.Errorf("rerun should clear the log first: first run %d lines, second %d", first, second)
	}
}

func TestLog_MirrorReplays(t *testing.T) {
	log := NewLog()
	log.Append("one")
	log.Append("two")

	var seen []string
	log.SetMirror(func(e Entry) { seen = append(seen, e.Line) })
	log.Append("three")

	want := []string{"one", "two", "three"}
	if len(seen) != len(want) {
		t.Fatalf("mirror should replay buffered lines then follow, got %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, seen[i], want[i])
		}
	}
}
