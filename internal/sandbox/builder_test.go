package sandbox

import (
	"strings"
	"testing"

	"github.com/shaiso/Scenarium/internal/domain"
)

func TestBuild_NoMarkup(t *testing.T) {
	bundle := domain.SiteBundle{}

	_, ok := Build(bundle)
	if ok {
		t.Error("bundle without markup should not be renderable")
	}
}

func TestBuild_MarkupOnly(t *testing.T) {
	markup := "<html><head></head><body><p>hi</p></body></html>"
	bundle := domain.NewSiteBundle(markup)

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}
	if doc != markup {
		t.Errorf("markup without assets should pass through unchanged, got %q", doc)
	}
}

func TestBuild_StylesBeforeHeadClose(t *testing.T) {
	bundle := domain.NewSiteBundle("<html><head><title>t</title></head><body></body></html>")
	bundle.Styles = []domain.Asset{
		{Name: "base.css", Content: "body { margin: 0; }"},
		{Name: "theme.css", Content: ".dark { color: #eee; }"},
	}

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}

	headClose := strings.Index(doc, "</head>")
	base := strings.Index(doc, "/* base.css */")
	theme := strings.Index(doc, "/* theme.css */")

	if base < 0 || theme < 0 {
		t.Fatal("styles should be injected with source labels")
	}
	if base > headClose || theme > headClose {
		t.Error("styles should appear before </head>")
	}
	// Порядок файлов сохраняется
	if base > theme {
		t.Error("base.css should be injected before theme.css")
	}
}

func TestBuild_ScriptsBeforeBodyClose(t *testing.T) {
	bundle := domain.NewSiteBundle("<html><body><p>x</p></body></html>")
	bundle.Scripts = []domain.Asset{
		{Name: "app.js", Content: "console.log('app');"},
	}

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}

	bodyClose := strings.Index(doc, "</body>")
	script := strings.Index(doc, "// app.js")
	if script < 0 {
		t.Fatal("script should be injected with source label")
	}
	if script > bodyClose {
		t.Error("scripts should appear before </body>")
	}
}

func TestBuild_UppercaseMarkers(t *testing.T) {
	bundle := domain.NewSiteBundle("<HTML><HEAD></HEAD><BODY></BODY></HTML>")
	bundle.Styles = []domain.Asset{{Name: "a.css", Content: "b {}"}}

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}
	if !strings.Contains(doc, "</style>\n</HEAD>") {
		t.Errorf("styles should land right before the uppercase head close, got %q", doc)
	}
}

func TestBuild_MultibyteRunesBeforeMarker(t *testing.T) {
	// Руна İ (U+0130) при ToLower становится длиннее на байт, поэтому
	// индекс маркера нельзя искать в приведённой к нижнему регистру копии.
	bundle := domain.NewSiteBundle("<html><head><title>İstanbul</title></head><body></body></html>")
	bundle.Styles = []domain.Asset{{Name: "a.css", Content: "b{}"}}

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}
	if !strings.Contains(doc, "</title><style>/* a.css */") {
		t.Errorf("style block should start right after </title>, got %q", doc)
	}
	if !strings.Contains(doc, "</style>\n</head>") {
		t.Errorf("style block should end right before </head>, got %q", doc)
	}
}

func TestBuild_NoMarkers(t *testing.T) {
	bundle := domain.NewSiteBundle("<div>fragment</div>")
	bundle.Styles = []domain.Asset{{Name: "a.css", Content: "div {}"}}
	bundle.Scripts = []domain.Asset{{Name: "a.js", Content: "1;"}}

	doc, ok := Build(bundle)
	if !ok {
		t.Fatal("expected renderable document")
	}

	// Без </head> стили уходят в начало, без </body> скрипты — в конец.
	if !strings.HasPrefix(doc, "<style>/* a.css */") {
		t.Errorf("styles should be prepended, got %q", doc)
	}
	if !strings.HasSuffix(doc, "</script>\n") {
		t.Errorf("scripts should be appended, got %q", doc)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	bundle := domain.NewSiteBundle("<html><head></head><body></body></html>")
	bundle.Styles = []domain.Asset{{Name: "s.css", Content: "p {}"}}
	bundle.Scripts = []domain.Asset{{Name: "s.js", Content: "2;"}}

	first, ok1 := Build(bundle)
	second, ok2 := Build(bundle)

	if !ok1 || !ok2 {
		t.Fatal("expected renderable document")
	}
	if first != second {
		t.Error("Build should yield identical output for identical input")
	}
}
