package surface

import (
	"context"
	"errors"
)

// Ошибки render surface.
var (
	// ErrNotLoaded — операция над surface, в который не загружен документ.
	ErrNotLoaded = errors.New("surface has no document loaded")

	// ErrNoMatch — селектор не нашёл ни одного элемента.
	ErrNoMatch = errors.New("no element matches selector")

	// ErrBadSelector — селектор не распарсился.
	ErrBadSelector = errors.New("invalid selector")

	// ErrClosed — surface уже освобождён.
	ErrClosed = errors.New("surface is closed")
)

// Surface — изолированный контекст рендеринга.
//
// Surface умеет загрузить один самодостаточный документ и даёт шагам
// доступ к его содержимому. Каждый surface принадлежит ровно одному
// runner'у и никогда не разделяется между запусками.
//
// Реализации:
//   - MemorySurface — in-process DOM без выполнения скриптов (CI, тесты)
//   - ChromeSurface — headless Chrome вкладка через CDP
type Surface interface {
	// Load загружает документ, заменяя предыдущее содержимое.
	// Блокируется до окончания загрузки или отмены ctx.
	Load(ctx context.Context, doc string) error

	// Count возвращает число элементов, подходящих под CSS-селектор.
	Count(ctx context.Context, selector string) (int, error)

	// Click кликает по первому подходящему элементу.
	// Возвращает ErrNoMatch, если элементов нет.
	Click(ctx context.Context, selector string) error

	// SetValue устанавливает значение первого подходящего элемента
	// и уведомляет страницу об изменении (input/change события там,
	// где реализация их поддерживает).
	SetValue(ctx context.Context, selector, value string) error

	// Text возвращает текстовое содержимое первого подходящего элемента.
	Text(ctx context.Context, selector string) (string, error)

	// Close освобождает ресурсы surface. Повторный Close безопасен.
	Close() error
}

// Factory создаёт новый изолированный surface для очередного runner'а.
type Factory func() (Surface, error)
