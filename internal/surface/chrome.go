package surface

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
)

// ChromeAllocator — общий процесс headless Chrome.
//
// Allocator управляет жизненным циклом процесса браузера; каждый runner
// получает собственную вкладку (ChromeSurface), изолированную от остальных.
type ChromeAllocator struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// ChromeOptions — настройки запуска браузера.
type ChromeOptions struct {
	// Headless — запускать без окна (по умолчанию в проде).
	Headless bool

	// ViewportW, ViewportH — размеры viewport. 0 — значения по умолчанию.
	ViewportW int
	ViewportH int
}

// NewChromeAllocator запускает allocator процесса Chrome.
func NewChromeAllocator(ctx context.Context, opts ChromeOptions) *ChromeAllocator {
	w, h := opts.ViewportW, opts.ViewportH
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 800
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(w, h),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
	)
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Headless)
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	return &ChromeAllocator{allocCtx: allocCtx, allocCancel: cancel}
}

// NewSurface создаёт новую изолированную вкладку.
func (a *ChromeAllocator) NewSurface() (Surface, error) {
	tabCtx, cancel := chromedp.NewContext(a.allocCtx)
	return &ChromeSurface{tabCtx: tabCtx, tabCancel: cancel}, nil
}

// Factory возвращает Factory поверх allocator'а.
func (a *ChromeAllocator) Factory() Factory {
	return a.NewSurface
}

// Close завершает процесс браузера вместе со всеми вкладками.
func (a *ChromeAllocator) Close() {
	a.allocCancel()
}

// ChromeSurface — вкладка headless Chrome, управляемая через CDP.
//
// Документ загружается как data: URL, поэтому страница живёт в одном
// origin и не ходит в сеть. Скрипты из bundle здесь действительно
// выполняются — это «живой» surface для интерактивных запусков.
type ChromeSurface struct {
	tabCtx    context.Context
	tabCancel context.CancelFunc

	mu     sync.Mutex
	loaded bool
	closed bool
}

// Load навигирует вкладку на собранный документ и ждёт готовности body.
func (s *ChromeSurface) Load(ctx context.Context, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(doc))

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	s.loaded = true
	return nil
}

// Count считает элементы через querySelectorAll.
func (s *ChromeSurface) Count(ctx context.Context, selector string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return 0, err
	}

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	var count int
	js := fmt.Sprintf("document.querySelectorAll(%q).length", selector)
	if err := chromedp.Run(runCtx, chromedp.Evaluate(js, &count)); err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	return count, nil
}

// Click кликает по первому подходящему элементу.
func (s *ChromeSurface) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return err
	}

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	if err := s.requireMatch(runCtx, selector); err != nil {
		return err
	}

	if err := chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// SetValue устанавливает значение и диспатчит input/change события,
// чтобы реактивные UI увидели изменение.
func (s *ChromeSurface) SetValue(ctx context.Context, selector, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return err
	}

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	if err := s.requireMatch(runCtx, selector); err != nil {
		return err
	}

	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		el.value = %q;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
	})()`, selector, value)

	if err := chromedp.Run(runCtx, chromedp.Evaluate(js, nil)); err != nil {
		return fmt.Errorf("set value %s: %w", selector, err)
	}
	return nil
}

// Text возвращает textContent первого подходящего элемента.
func (s *ChromeSurface) Text(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReady(); err != nil {
		return "", err
	}

	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	if err := s.requireMatch(runCtx, selector); err != nil {
		return "", err
	}

	var text string
	if err := chromedp.Run(runCtx, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("text %s: %w", selector, err)
	}
	return text, nil
}

// Close закрывает вкладку. Повторный вызов безопасен.
func (s *ChromeSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.tabCancel()
	return nil
}

// checkReady проверяет, что surface жив и документ загружен.
func (s *ChromeSurface) checkReady() error {
	if s.closed {
		return ErrClosed
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// requireMatch переводит нулевое число совпадений в ErrNoMatch.
func (s *ChromeSurface) requireMatch(runCtx context.Context, selector string) error {
	var count int
	js := fmt.Sprintf("document.querySelectorAll(%q).length", selector)
	if err := chromedp.Run(runCtx, chromedp.Evaluate(js, &count)); err != nil {
		return fmt.Errorf("query %s: %w", selector, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return nil
}

// runContext связывает дедлайн вызывающего с контекстом вкладки.
func (s *ChromeSurface) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(s.tabCtx, deadline)
	}
	return context.WithCancel(s.tabCtx)
}
