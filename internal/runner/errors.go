package runner

import "errors"

// Ошибки менеджера runner'ов.
var (
	// ErrRunnerNotFound — runner с таким ID не зарегистрирован.
	ErrRunnerNotFound = errors.New("runner not found")

	// ErrManagerStopped — менеджер уже остановлен.
	ErrManagerStopped = errors.New("runner manager is stopped")
)
