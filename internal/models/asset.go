// Package models содержит доменные структуры каталога медиаресурсов,
// корзины и покупок, а также вспомогательные типы для приёма данных
// из JSON-запросов.
package models

import "time"

// Категории и типы ресурсов, доступные в каталоге.
var (
	Categories = []string{"Nature", "Business", "Technology", "Art", "Food", "Travel", "Fashion", "Sport", "Architecture"}
	AssetTypes = []string{"Photo", "Vector", "Icon", "Illustration", "PSD"}
)

// Asset представляет ресурс каталога (фото, вектор, иконку и т.д.).
// Счётчики Views, Downloads, Likes и Revenue изменяются только через
// хранилище; Revenue растёт только при успешной покупке.
type Asset struct {
	ID          int       // Уникальный идентификатор ресурса
	Title       string    // Название ресурса
	Author      string    // Имя автора
	AuthorUID   string    // UID пользователя, загрузившего ресурс
	Description string    // Описание
	Category    string    // Категория, одна из Categories
	AssetType   string    // Тип, один из AssetTypes
	IsPremium   bool      // Признак платного ресурса
	Price       int       // Цена; 0, если ресурс бесплатный
	ImageRef    string    // Непрозрачная ссылка на файл изображения
	Tags        string    // Нормализованный список тегов через запятую
	UploadDate  time.Time // Дата загрузки
	Views       int       // Количество просмотров
	Downloads   int       // Количество скачиваний
	Likes       int       // Количество лайков
	Revenue     int       // Суммарная выручка по ресурсу
}

// DummyAsset используется для приёма данных о новом ресурсе из JSON-запроса
// до их валидации и преобразования в Asset.
type DummyAsset struct {
	Title       string `json:"title" validate:"required"`                                          // Название
	Author      string `json:"author" validate:"required"`                                         // Автор
	Description string `json:"description" validate:"omitempty"`                                   // Описание
	Category    string `json:"category" validate:"required"`                                       // Категория
	AssetType   string `json:"asset_type" validate:"required,oneof=Photo Vector Icon Illustration PSD"` // Тип ресурса
	IsPremium   bool   `json:"is_premium"`                                                         // Платный ресурс
	Price       int    `json:"price" validate:"gte=0"`                                             // Цена (>=0)
	ImageRef    string `json:"image_ref" validate:"required"`                                      // Ссылка на изображение
	Tags        string `json:"tags" validate:"omitempty"`                                          // Теги через запятую
}
