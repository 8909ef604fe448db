package models

import "errors"

// Типизированные ошибки доменной логики. Все они адресованы пользователю
// и не должны приводить к падению процесса; обработчики сопоставляют их
// через errors.Is и возвращают подходящий HTTP-статус.
var (
	// ErrNotFound возвращается при обращении к несуществующему ресурсу
	// или пользователю.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyOwned возвращается при попытке положить в корзину ресурс,
	// который пользователь уже купил.
	ErrAlreadyOwned = errors.New("asset already owned")
	// ErrAlreadyPurchased возвращается, если во время оформления заказа
	// обнаружена уже существующая покупка для пары (пользователь, ресурс).
	ErrAlreadyPurchased = errors.New("asset already purchased")
	// ErrEmptyCart возвращается при оформлении заказа с пустой корзиной.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPremiumOnly возвращается при попытке скачать платный ресурс
	// без покупки.
	ErrPremiumOnly = errors.New("premium asset is not purchased")
	// ErrInvalidAsset возвращается при попытке опубликовать ресурс
	// с противоречивыми полями.
	ErrInvalidAsset = errors.New("invalid asset")
)
