// Package models содержит структуры фильтрации каталога, которые
// передаются из HTTP-слоя в слой доступа к данным.
package models

// AssetFilter представляет параметры выборки ресурсов каталога.
// Нулевые указатели означают отсутствие фильтра по соответствующему полю.
type AssetFilter struct {
	Category    *string // Категория (nil — без фильтра)
	AssetType   *string // Тип ресурса (nil — без фильтра)
	PremiumOnly bool    // Только платные ресурсы
	Search      string  // Подстрока для поиска по названию, автору и тегам
	Limit       int     // Размер страницы
	Offset      int     // Смещение страницы
}
