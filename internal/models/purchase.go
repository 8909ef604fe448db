package models

import "time"

// Purchase представляет неизменяемую запись о покупке ресурса.
// Запись создаётся ровно один раз успешным оформлением заказа;
// пара (пользователь, ресурс) уникальна — повторная покупка невозможна.
type Purchase struct {
	ID            int       // Уникальный идентификатор покупки
	UserUID       string    // UID покупателя
	AssetID       int       // Идентификатор купленного ресурса
	PricePaid     int       // Цена на момент покупки
	TransactionID int       // Идентификатор транзакции, в рамках которой создана покупка
	CreatedAt     time.Time // Время покупки
}

// Transaction группирует покупки, созданные одним оформлением заказа.
// Используется только для истории и аудита: Total равен сумме PricePaid
// по всем покупкам транзакции.
type Transaction struct {
	ID        int       // Уникальный идентификатор транзакции
	UserUID   string    // UID покупателя
	Total     int       // Итоговая сумма заказа
	Status    string    // Статус транзакции
	CreatedAt time.Time // Время оформления
}

// StatusCompleted — единственный статус успешно оформленной транзакции.
const StatusCompleted = "completed"

// PurchaseEvent публикуется в очередь сообщений после успешного
// оформления заказа.
type PurchaseEvent struct {
	Username      string    `json:"username"`
	UserUID       string    `json:"user_uid"`
	TransactionID int       `json:"transaction_id"`
	AssetIDs      []int     `json:"asset_ids"`
	Total         int       `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}
