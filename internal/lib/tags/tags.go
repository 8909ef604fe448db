// Package tags содержит функции нормализации тегов ресурса.
// Теги хранятся одной строкой через запятую; при нормализации
// убираются пробелы, пустые значения и дубликаты, регистр приводится
// к нижнему.
package tags

import "strings"

// Normalize разбирает строку тегов через запятую и собирает её обратно
// в каноническом виде. Порядок первых вхождений сохраняется.
func Normalize(raw string) string {
	return strings.Join(Split(raw), ",")
}

// Split возвращает список нормализованных тегов из строки через запятую.
func Split(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
