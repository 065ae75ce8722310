// Package surface реализует изолированные контексты рендеринга (render
// surfaces), в которые Execution Pipeline загружает собранный документ
// и против которых выполняются шаги.
//
// # Интерфейс Surface
//
//	type Surface interface {
//	    Load(ctx, doc) error
//	    Count(ctx, selector) (int, error)
//	    Click(ctx, selector) error
//	    SetValue(ctx, selector, value) error
//	    Text(ctx, selector) (string, error)
//	    Close() error
//	}
//
// Каждый surface эксклюзивно принадлежит одному runner'у. Изоляция между
// runner'ами — на уровне реализации: отдельное DOM-дерево в памяти или
// отдельная вкладка браузера.
//
// # Реализации
//
// ## MemorySurface (memory.go)
//
// DOM поверх golang.org/x/net/html с CSS-селекторами cascadia.
// Скрипты не выполняются, поэтому результаты детерминированы.
// Используется в CI и в тестах. Клики и вводы пишутся в журнал Events().
//
// ## ChromeSurface (chrome.go)
//
// Вкладка headless Chrome через chromedp. Общий ChromeAllocator держит
// процесс браузера, NewSurface() выдаёт по вкладке на runner. Документ
// загружается как data: URL — страница не ходит в сеть и живёт в одном
// origin. SetValue диспатчит input/change события для реактивных UI.
//
// # Выбор реализации
//
// Фабрика выбирается в cmd/scenarium-api по переменной окружения SURFACE
// ("memory" по умолчанию, "chrome" для живых запусков).
package surface
