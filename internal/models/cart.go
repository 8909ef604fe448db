package models

import "time"

// CartEntry представляет позицию в корзине пользователя.
// Для пары (пользователь, ресурс) существует не более одной записи:
// повторное добавление уже лежащего в корзине ресурса не создаёт дубликата.
type CartEntry struct {
	UserUID string    // UID владельца корзины
	AssetID int       // Идентификатор ресурса
	AddedAt time.Time // Время добавления в корзину
}
