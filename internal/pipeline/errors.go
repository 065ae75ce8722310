package pipeline

import "errors"

// Ошибки пайплайна.
var (
	// ErrNoContent — из bundle нельзя собрать документ (нет разметки).
	ErrNoContent = errors.New("no content to render")

	// ErrLoadTimeout — surface не закончил загрузку документа в срок.
	ErrLoadTimeout = errors.New("document load timeout")
)
