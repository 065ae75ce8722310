package sandbox

import (
	"fmt"
	"strings"

	"github.com/shaiso/Scenarium/internal/domain"
)

// Build собирает единый самодостаточный документ из снимка сайта.
//
// Стили вставляются непосредственно перед </head> (иначе — в начало
// документа), скрипты — перед </body> (иначе — в конец). Порядок файлов
// сохраняется, каждая вставка помечена именем исходного файла.
//
// Build — чистая функция: одинаковый bundle всегда даёт одинаковую строку.
// Возвращает ok=false, если в bundle нет разметки — рендерить нечего.
func Build(bundle domain.SiteBundle) (string, bool) {
	if !bundle.CanRender() {
		return "", false
	}

	doc := *bundle.Markup

	if block := styleBlock(bundle.Styles); block != "" {
		doc = injectBefore(doc, "</head>", block, true)
	}
	if block := scriptBlock(bundle.Scripts); block != "" {
		doc = injectBefore(doc, "</body>", block, false)
	}

	return doc, true
}

// styleBlock формирует блок <style> тегов, по одному на файл.
func styleBlock(styles []domain.Asset) string {
	if len(styles) == 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range styles {
		fmt.Fprintf(&b, "<style>/* %s */\n%s</style>\n", s.Name, s.Content)
	}
	return b.String()
}

// scriptBlock формирует блок <script> тегов, по одному на файл.
func scriptBlock(scripts []domain.Asset) string {
	if len(scripts) == 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range scripts {
		fmt.Fprintf(&b, "<script>// %s\n%s</script>\n", s.Name, s.Content)
	}
	return b.String()
}

// injectBefore вставляет block перед первым вхождением marker
// (регистронезависимо). Если маркера нет: prepend=true — в начало
// документа, иначе — в конец.
func injectBefore(doc, marker, block string, prepend bool) string {
	idx := indexFold(doc, marker)
	if idx < 0 {
		if prepend {
			return block + doc
		}
		return doc + block
	}
	return doc[:idx] + block + doc[idx:]
}

// indexFold ищет marker в doc без учёта регистра и возвращает байтовый
// индекс в исходной строке. Индексация по строке, приведённой к нижнему
// регистру, здесь непригодна: ToLower меняет длину некоторых рун, и
// смещение уезжает. Маркер — чистый ASCII, поэтому совпадение всегда
// занимает ровно len(marker) байт.
func indexFold(doc, marker string) int {
	for i := 0; i+len(marker) <= len(doc); i++ {
		if strings.EqualFold(doc[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}
