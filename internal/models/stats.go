package models

// Stats представляет сводную статистику каталога для витрины.
type Stats struct {
	TotalAssets    int `json:"total_assets"`    // Всего ресурсов
	FreeAssets     int `json:"free_assets"`     // Бесплатных ресурсов
	TotalDownloads int `json:"total_downloads"` // Всего скачиваний
	ActiveUsers    int `json:"active_users"`    // Всего пользователей
}
