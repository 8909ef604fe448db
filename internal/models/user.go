// Package models содержит доменную модель пользователя маркетплейса.
// Пользователь создаётся лениво при первом обращении по имени,
// путь удаления отсутствует.
package models

import "time"

// User представляет пользователя системы.
type User struct {
	UID       string    // Уникальный идентификатор пользователя
	Username  string    // Имя пользователя (уникальное)
	CreatedAt time.Time // Дата первого обращения
}
