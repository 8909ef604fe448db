// Package purchase содержит бизнес-логику оформления заказа:
// атомарное превращение корзины в покупки с начислением выручки,
// публикацию события о покупке и историю покупок и транзакций.
package purchase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// PurchaseRepository определяет методы оформления и истории покупок
// в хранилище.
type PurchaseRepository interface {
	// Checkout атомарно оформляет заказ по корзине пользователя.
	Checkout(ctx context.Context, userUID string) (*models.Transaction, []int, error)
	// ListPurchases возвращает покупки пользователя с пагинацией.
	ListPurchases(ctx context.Context, userUID string, limit, offset int) ([]*models.Purchase, error)
	// ListTransactions возвращает транзакции пользователя с пагинацией.
	ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error)
}

// Entitlements помечает купленные пары (пользователь, ресурс) в кеше.
type Entitlements interface {
	MarkOwned(userUID string, assetID int)
}

// Publisher публикует события о покупках в очередь сообщений.
type Publisher interface {
	Publish(message any) error
}

// Service реализует бизнес-логику оформления заказа.
type Service struct {
	repo         PurchaseRepository
	entitlements Entitlements
	publisher    Publisher
	log          *slog.Logger

	// locks сериализует оформление заказов одного пользователя:
	// два параллельных Checkout не могут прочитать одну и ту же корзину.
	locks sync.Map
}

// New создает новый экземпляр Service.
func New(repo PurchaseRepository, entitlements Entitlements, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		entitlements: entitlements,
		publisher:    publisher,
		log:          log,
	}
}

// userLock возвращает мьютекс оформления заказа для пользователя.
// Записи из карты не удаляются: она растёт с числом покупавших
// пользователей и живёт до конца процесса.
func (s *Service) userLock(userUID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userUID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Checkout оформляет заказ по текущей корзине пользователя и возвращает
// созданную транзакцию. Возвращает models.ErrEmptyCart для пустой
// корзины и models.ErrAlreadyPurchased при обнаруженной повторной
// покупке; в обоих случаях состояние хранилища не меняется.
func (s *Service) Checkout(ctx context.Context, username, userUID string) (*models.Transaction, error) {
	mu := s.userLock(userUID)
	mu.Lock()
	defer mu.Unlock()

	result, assetIDs, err := s.repo.Checkout(ctx, userUID)
	if err != nil {
		return nil, err
	}

	for _, assetID := range assetIDs {
		s.entitlements.MarkOwned(userUID, assetID)
	}

	s.log.Info("checkout completed",
		slog.String("username", username),
		slog.Int("transaction_id", result.ID),
		slog.Int("items", len(assetIDs)),
		slog.Int("total", result.Total))

	event := models.PurchaseEvent{
		Username:      username,
		UserUID:       userUID,
		TransactionID: result.ID,
		AssetIDs:      assetIDs,
		Total:         result.Total,
		CreatedAt:     result.CreatedAt,
	}
	if err := s.publisher.Publish(event); err != nil {
		s.log.Warn("failed to publish purchase event",
			slog.Int("transaction_id", result.ID), sl.Err(err))
	}

	return result, nil
}

// ListPurchases возвращает покупки пользователя.
func (s *Service) ListPurchases(ctx context.Context, userUID string, limit, offset int) ([]*models.Purchase, error) {
	return s.repo.ListPurchases(ctx, userUID, limit, offset)
}

// ListTransactions возвращает транзакции пользователя.
func (s *Service) ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error) {
	return s.repo.ListTransactions(ctx, userUID, limit, offset)
}
