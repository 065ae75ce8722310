package editor

import (
	"errors"
	"testing"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
)

func newEditor() *Editor {
	return New(steps.DefaultRegistry())
}

// fill добавляет n кликов и возвращает редактор.
func fill(t *testing.T, e *Editor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := e.Append(steps.KindClickElement); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func kinds(e *Editor) []string {
	list := e.Steps()
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Kind
	}
	return out
}

func TestInsert_AtEndAndMiddle(t *testing.T) {
	e := newEditor()
	fill(t, e, 2)

	step, err := e.Insert(steps.KindInputText, 1)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if step.Kind != steps.KindInputText {
		t.Errorf("expected input step, got %s", step.Kind)
	}

	got := kinds(e)
	want := []string{steps.KindClickElement, steps.KindInputText, steps.KindClickElement}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v", i, got)
		}
	}
}

func TestInsert_UnknownKind(t *testing.T) {
	e := newEditor()

	_, err := e.Insert("teleport", 0)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestInsert_GeneratesUniqueIDs(t *testing.T) {
	e := newEditor()
	fill(t, e, 3)

	seen := map[string]bool{}
	for _, s := range e.Steps() {
		if seen[s.ID.String()] {
			t.Fatal("step IDs must be unique")
		}
		seen[s.ID.String()] = true
	}
}

func TestReorder_MoveNotSwap(t *testing.T) {
	e := newEditor()
	// click, input, contains
	e.Append(steps.KindClickElement)
	e.Append(steps.KindInputText)
	e.Append(steps.KindElementShouldContain)

	if err := e.Reorder(0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	got := kinds(e)
	want := []string{steps.KindInputText, steps.KindElementShouldContain, steps.KindClickElement}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("move semantics violated: got %v", got)
		}
	}
}

func TestReorder_InverseLaw(t *testing.T) {
	e := newEditor()
	e.Append(steps.KindClickElement)
	e.Append(steps.KindInputText)
	e.Append(steps.KindElementShouldContain)
	e.Append(steps.KindWaitForElement)

	before := e.Steps()

	// i → j → i восстанавливает порядок для любых валидных пар
	for i := 0; i < e.Len(); i++ {
		for j := 0; j < e.Len(); j++ {
			if err := e.Reorder(i, j); err != nil {
				t.Fatalf("reorder %d→%d: %v", i, j, err)
			}
			if err := e.Reorder(j, i); err != nil {
				t.Fatalf("reorder back %d→%d: %v", j, i, err)
			}

			after := e.Steps()
			for k := range before {
				if after[k].ID != before[k].ID {
					t.Fatalf("reorder %d→%d→%d did not restore order", i, j, i)
				}
			}
		}
	}
}

func TestReorder_SamePositionNoop(t *testing.T) {
	e := newEditor()
	fill(t, e, 2)
	before := e.Steps()

	if err := e.Reorder(1, 1); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	after := e.Steps()
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Error("reorder to the same index should be a no-op")
		}
	}
}

func TestUpdateParam(t *testing.T) {
	e := newEditor()
	e.Append(steps.KindClickElement)

	if err := e.UpdateParam(0, "selector", "#go"); err != nil {
		t.Fatalf("update param: %v", err)
	}
	if e.Steps()[0].Params["selector"] != "#go" {
		t.Error("param should be stored")
	}

	// Ключ вне схемы типа — ошибка
	if err := e.UpdateParam(0, "volume", "11"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestDelete_SelectionRules(t *testing.T) {
	e := newEditor()
	fill(t, e, 3)

	// Удаление выделенного снимает выделение
	e.Select(1)
	if err := e.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.Selected() != NoSelection {
		t.Error("deleting the selected step should clear selection")
	}

	// Удаление перед выделением сдвигает индекс на тот же логический шаг
	fill(t, e, 1) // снова 3 шага
	e.Select(2)
	selectedID := e.SelectedStep().ID

	if err := e.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.Selected() != 1 {
		t.Errorf("selection should shift to 1, got %d", e.Selected())
	}
	if e.SelectedStep().ID != selectedID {
		t.Error("selection should still point at the same logical step")
	}

	// Удаление после выделения индекс не трогает
	e.Select(0)
	if err := e.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.Selected() != 0 {
		t.Errorf("selection should stay at 0, got %d", e.Selected())
	}
}

func TestLoad_KeepsUnknownKinds(t *testing.T) {
	e := newEditor()

	// «Осиротевший» шаг остаётся в списке: пропуск неизвестных типов —
	// дело отображения, редактор данные не теряет.
	e.Load(domain.StepList{
		domain.NewStepInstance(steps.KindClickElement, nil),
		domain.NewStepInstance("teleport", nil),
		domain.NewStepInstance(steps.KindInputText, nil),
	})

	if e.Len() != 3 {
		t.Fatalf("orphan steps must survive Load, got %d steps", e.Len())
	}
	got := kinds(e)
	if got[0] != steps.KindClickElement || got[1] != "teleport" || got[2] != steps.KindInputText {
		t.Errorf("order with orphan should be preserved, got %v", got)
	}
}

func TestEdit_IndicesAlignWithOrphanPresent(t *testing.T) {
	e := newEditor()
	e.Load(domain.StepList{
		domain.NewStepInstance(steps.KindClickElement, nil),
		domain.NewStepInstance("teleport", nil),
		domain.NewStepInstance(steps.KindClickElement, nil),
	})

	// Индекс 2 указывает на третий шаг списка, а не на второй известный
	if err := e.Delete(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := kinds(e)
	if len(got) != 2 || got[0] != steps.KindClickElement || got[1] != "teleport" {
		t.Fatalf("delete removed the wrong step, got %v", got)
	}

	// Параметры осиротевшего шага править нельзя, но сам шаг на месте
	if err := e.UpdateParam(1, "selector", "#x"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind for orphan step, got %v", err)
	}
	if e.Len() != 2 {
		t.Error("failed edit should not drop steps")
	}
}

func TestRoundTrip_PreservesKindsAndParams(t *testing.T) {
	e := newEditor()
	e.Append(steps.KindClickElement)
	e.UpdateParam(0, "selector", "#a")
	e.Append(steps.KindElementShouldContain)
	e.UpdateParam(1, "selector", "#b")
	e.UpdateParam(1, "text", "ok")

	data, err := e.Steps().MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored, err := domain.ParseStepList(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	original := e.Steps()
	if len(restored) != len(original) {
		t.Fatalf("length mismatch: %d vs %d", len(restored), len(original))
	}
	for i := range original {
		if restored[i].Kind != original[i].Kind {
			t.Errorf("step %d kind mismatch: %s vs %s", i, restored[i].Kind, original[i].Kind)
		}
		for k, v := range original[i].Params {
			if restored[i].Params[k] != v {
				t.Errorf("step %d param %s mismatch", i, k)
			}
		}
	}
}

func TestParseStepList_MalformedDegradesToEmpty(t *testing.T) {
	list, err := domain.ParseStepList([]byte(`{"not": "a list"`))
	if err == nil {
		t.Error("malformed json should be reported")
	}
	if len(list) != 0 {
		t.Error("malformed json should degrade to an empty list")
	}
}
