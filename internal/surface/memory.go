package surface

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// MemorySurface — in-process реализация Surface поверх дерева x/net/html.
//
// Документ парсится в DOM, запросы выполняются через CSS-селекторы
// (cascadia). Скрипты из документа не выполняются, поэтому surface
// детерминирован: что в разметке — то и наблюдают шаги. Клики и вводы
// записываются в журнал событий, доступный через Events().
type MemorySurface struct {
	mu     sync.Mutex
	doc    *html.Node
	events []string
	closed bool
}

// NewMemorySurface создаёт пустой surface без загруженного документа.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

// MemoryFactory — Factory для in-memory surfaces.
func MemoryFactory() (Surface, error) {
	return NewMemorySurface(), nil
}

// Load парсит документ в DOM, заменяя предыдущий.
func (s *MemorySurface) Load(ctx context.Context, doc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	// html.Parse терпим к битой разметке и ошибок почти не возвращает,
	// но повреждённый вход всё равно считаем фатальным для загрузки.
	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	s.doc = node
	s.events = nil
	return nil
}

// Count возвращает число элементов под селектором.
func (s *MemorySurface) Count(ctx context.Context, selector string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.queryAll(selector)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// Click отмечает клик по первому подходящему элементу.
func (s *MemorySurface) Click(ctx context.Context, selector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.queryFirst(selector)
	if err != nil {
		return err
	}

	s.events = append(s.events, "click "+describeNode(node))
	return nil
}

// SetValue устанавливает атрибут value первого подходящего элемента.
// Для textarea дополнительно заменяется текстовое содержимое.
func (s *MemorySurface) SetValue(ctx context.Context, selector, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.queryFirst(selector)
	if err != nil {
		return err
	}

	setAttr(node, "value", value)
	if node.Data == "textarea" {
		replaceText(node, value)
	}

	s.events = append(s.events, "input "+describeNode(node))
	return nil
}

// Text возвращает сцепленное текстовое содержимое первого элемента.
func (s *MemorySurface) Text(ctx context.Context, selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.queryFirst(selector)
	if err != nil {
		return "", err
	}
	return collectText(node), nil
}

// Close освобождает документ.
func (s *MemorySurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.doc = nil
	return nil
}

// Events возвращает журнал синтетических событий (клики, вводы).
func (s *MemorySurface) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.events))
	copy(out, s.events)
	return out
}

// --- внутренние помощники (вызываются под mu) ---

func (s *MemorySurface) queryAll(selector string) ([]*html.Node, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadSelector, selector)
	}

	return cascadia.QueryAll(s.doc, sel), nil
}

func (s *MemorySurface) queryFirst(selector string) (*html.Node, error) {
	nodes, err := s.queryAll(selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return nodes[0], nil
}

// setAttr устанавливает или заменяет атрибут элемента.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// replaceText заменяет дочерние узлы элемента одним текстовым узлом.
func replaceText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// collectText собирает текст всех текстовых потомков.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// describeNode возвращает краткое описание элемента для журнала событий.
func describeNode(n *html.Node) string {
	desc := n.Data
	for _, a := range n.Attr {
		if a.Key == "id" {
			return desc + "#" + a.Val
		}
	}
	return desc
}
