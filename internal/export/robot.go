package export

import (
	"strings"

	"github.com/shaiso/Scenarium/internal/domain"
	"github.com/shaiso/Scenarium/internal/steps"
)

// preamble — фиксированная шапка экспортируемого тест-кейса.
const preamble = `*** Settings ***
Library    SeleniumLibrary

*** Test Cases ***
`

// Script собирает Robot Framework тест-кейс из последовательности шагов.
//
// Шапка фиксированная, дальше имя кейса и по одной строке на шаг в порядке
// списка. Шаги неизвестных типов пропускаются — как и при отрисовке
// в редакторе, экспорт не падает из-за осиротевшего шага.
func Script(name string, list domain.StepList, registry *steps.Registry) string {
	if name == "" {
		name = "Untitled Scenario"
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString(name)
	b.WriteString("\n")

	for _, step := range list {
		kind, err := registry.Get(step.Kind)
		if err != nil {
			continue
		}
		b.WriteString(kind.ScriptLine(step.Params))
		b.WriteString("\n")
	}

	return b.String()
}
