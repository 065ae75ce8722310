package export

import (
	"strings"
	"testing"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
)

func TestScript_TwoStepsInOrder(t *testing.T) {
	list := domain.StepList{
		domain.NewStepInstance(steps.KindClickElement, map[string]string{"selector": "#a"}),
		domain.NewStepInstance(steps.KindElementShouldContain, map[string]string{
			"selector": "#b",
			"text":     "ok",
		}),
	}

	script := Script("Checkout", list, steps.DefaultRegistry())

	if !strings.HasPrefix(script, "*** Settings ***\nLibrary    SeleniumLibrary\n\n*** Test Cases ***\nCheckout\n") {
		t.Errorf("script should start with the fixed preamble, got:\n%s", script)
	}

	click := strings.Index(script, "    Click Element    css=#a")
	contains := strings.Index(script, "    Element Should Contain    css=#b    ok")
	if click < 0 || contains < 0 {
		t.Fatalf("both step lines should be present:\n%s", script)
	}
	if click > contains {
		t.Error("step lines should follow sequence order")
	}
}

func TestScript_SkipsUnknownKinds(t *testing.T) {
	list := domain.StepList{
		domain.NewStepInstance("teleport", nil),
		domain.NewStepInstance(steps.KindClickElement, map[string]string{"selector": "#x"}),
	}

	script := Script("S", list, steps.DefaultRegistry())

	if strings.Contains(script, "teleport") {
		t.Error("unknown kinds should be skipped silently")
	}
	if !strings.Contains(script, "Click Element") {
		t.Error("known kinds should still be exported")
	}
}

func TestScript_EmptyName(t *testing.T) {
	script := Script("", domain.StepList{}, steps.DefaultRegistry())
	if !strings.Contains(script, "Untitled Scenario") {
		t.Errorf("empty name should fall back to a default, got:\n%s", script)
	}
}
