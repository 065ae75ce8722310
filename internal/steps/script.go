package steps

import "strings"

// Разделитель аргументов Robot Framework — минимум два пробела,
// мы используем четыре, как в выводе robotidy.
const scriptSep = "    "

// scriptRow собирает одну строку тест-кейса: отступ, keyword, аргументы.
func scriptRow(cells ...string) string {
	return scriptSep + strings.Join(cells, scriptSep)
}

// scriptArg подготавливает значение аргумента. Многострочный текст
// переносится на continuation-строки, каждая с отступом под "...".
func scriptArg(value string) string {
	lines := strings.Split(value, "\n")
	if len(lines) == 1 {
		return value
	}

	var b strings.Builder
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(scriptSep)
		b.WriteString("...")
		b.WriteString(scriptSep)
		b.WriteString(line)
	}
	return b.String()
}

// cssLocator превращает CSS-селектор в локатор SeleniumLibrary.
func cssLocator(selector string) string {
	return "css=" + selector
}
