// Package entitlement отвечает на вопрос «купил ли пользователь ресурс».
// Владение терминально: однажды купленный ресурс остаётся купленным
// навсегда, поэтому в кеш попадают только положительные ответы — они
// не могут устареть, а промахи всегда идут в базу, что сохраняет
// чтение-после-записи сразу после оформления заказа.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
)

const ownsCacheTTL = 24 * time.Hour

// PurchaseRepository определяет проверку покупки в хранилище.
type PurchaseRepository interface {
	ExistsPurchase(ctx context.Context, userUID string, assetID int) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует проверку владения ресурсом.
type Service struct {
	repo  PurchaseRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo PurchaseRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func ownsKey(userUID string, assetID int) string {
	return fmt.Sprintf("entitlement:%s:%d", userUID, assetID)
}

// Owns возвращает true, если для пары (пользователь, ресурс) существует
// покупка.
func (s *Service) Owns(ctx context.Context, userUID string, assetID int) (bool, error) {
	key := ownsKey(userUID, assetID)

	var cached bool
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read entitlement cache", sl.Err(err))
	}
	if found && cached {
		return true, nil
	}

	owns, err := s.repo.ExistsPurchase(ctx, userUID, assetID)
	if err != nil {
		return false, err
	}
	if owns {
		s.MarkOwned(userUID, assetID)
	}
	return owns, nil
}

// MarkOwned помечает пару (пользователь, ресурс) купленной в кеше.
// Используется после успешного оформления заказа; ошибка кеша
// безвредна и лишь логируется.
func (s *Service) MarkOwned(userUID string, assetID int) {
	key := ownsKey(userUID, assetID)
	if err := s.cache.Set(key, true, ownsCacheTTL); err != nil {
		s.log.Warn("failed to cache entitlement", slog.String("key", key), sl.Err(err))
	}
}
