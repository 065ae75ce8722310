package domain

// SiteBundle — снимок сайта: разметка плюс именованные стили и скрипты.
//
// Bundle собирается из загруженных пользователем файлов и целиком
// описывает одну страницу под тестом. Bundle без разметки отрендерить нельзя.
type SiteBundle struct {
	// Markup — HTML-разметка страницы. nil, если файл не загружен.
	Markup *string `json:"markup"`

	// Styles — CSS-файлы в порядке загрузки.
	Styles []Asset `json:"styles,omitempty"`

	// Scripts — JS-файлы в порядке загрузки.
	Scripts []Asset `json:"scripts,omitempty"`
}

// Asset — именованный файл снимка (стиль или скрипт).
type Asset struct {
	// Name — имя исходного файла (используется как метка при инъекции).
	Name string `json:"name"`

	// Content — содержимое файла.
	Content string `json:"content"`
}

// CanRender возвращает true, если из bundle можно собрать документ.
func (b *SiteBundle) CanRender() bool {
	return b.Markup != nil
}

// NewSiteBundle создаёт bundle с заданной разметкой.
func NewSiteBundle(markup string) SiteBundle {
	return SiteBundle{Markup: &markup}
}
