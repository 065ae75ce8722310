package domain

// RunnerStatus — статус выполнения runner'а.
//
// Жизненный цикл:
//
//	CREATED → RUNNING → SUCCESS
//	                  ↘ FAILURE
//
// Статус re-entrant: завершённый runner можно перезапустить (rerun),
// тогда он возвращается в RUNNING.
type RunnerStatus string

const (
	// RunnerStatusCreated — runner создан, пайплайн ещё не стартовал.
	RunnerStatusCreated RunnerStatus = "CREATED"

	// RunnerStatusRunning — пайплайн выполняет шаги.
	RunnerStatusRunning RunnerStatus = "RUNNING"

	// RunnerStatusSuccess — все шаги выполнены без ошибок.
	RunnerStatusSuccess RunnerStatus = "SUCCESS"

	// RunnerStatusFailure — запуск прерван на первом упавшем шаге
	// (или не дошёл до шагов: пустой bundle, таймаут загрузки).
	RunnerStatusFailure RunnerStatus = "FAILURE"
)

// IsTerminal возвращает true, если статус финальный для текущего запуска.
func (s RunnerStatus) IsTerminal() bool {
	switch s {
	case RunnerStatusSuccess, RunnerStatusFailure:
		return true
	default:
		return false
	}
}
