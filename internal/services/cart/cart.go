// Package cart содержит бизнес-логику корзины пользователя.
// Корзина хранит не более одной записи на пару (пользователь, ресурс),
// а уже купленные ресурсы в неё не попадают.
package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// CartRepository определяет методы для работы с корзиной в хранилище.
type CartRepository interface {
	// ReadAsset возвращает ресурс по ID.
	ReadAsset(ctx context.Context, id int) (*models.Asset, error)
	// AddCartEntry добавляет ресурс в корзину, повтор — успешный no-op.
	AddCartEntry(ctx context.Context, userUID string, assetID int) error
	// RemoveCartEntry удаляет ресурс из корзины, отсутствие — не ошибка.
	RemoveCartEntry(ctx context.Context, userUID string, assetID int) error
	// ListCartAssets возвращает ресурсы в корзине пользователя.
	ListCartAssets(ctx context.Context, userUID string) ([]*models.Asset, error)
	// ClearCart удаляет все записи корзины пользователя.
	ClearCart(ctx context.Context, userUID string) error
	// CartTotal возвращает суммарную стоимость корзины.
	CartTotal(ctx context.Context, userUID string) (int, error)
}

// Entitlements отвечает на вопрос, куплен ли ресурс пользователем.
type Entitlements interface {
	Owns(ctx context.Context, userUID string, assetID int) (bool, error)
}

// CartService реализует бизнес-логику корзины.
type CartService struct {
	repo         CartRepository
	entitlements Entitlements
	log          *slog.Logger
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(repo CartRepository, entitlements Entitlements, log *slog.Logger) *CartService {
	return &CartService{
		repo:         repo,
		entitlements: entitlements,
		log:          log,
	}
}

// Add кладёт ресурс в корзину пользователя. Возвращает
// models.ErrNotFound для несуществующего ресурса и
// models.ErrAlreadyOwned для уже купленного. Повторное добавление
// уже лежащего в корзине ресурса — успешный no-op.
func (s *CartService) Add(ctx context.Context, userUID string, assetID int) error {
	if _, err := s.repo.ReadAsset(ctx, assetID); err != nil {
		return err
	}

	owns, err := s.entitlements.Owns(ctx, userUID, assetID)
	if err != nil {
		return fmt.Errorf("failed to check entitlement: %w", err)
	}
	if owns {
		return models.ErrAlreadyOwned
	}

	if err := s.repo.AddCartEntry(ctx, userUID, assetID); err != nil {
		return err
	}
	s.log.Info("added asset to cart",
		slog.String("user_uid", userUID), slog.Int("asset_id", assetID))
	return nil
}

// Remove убирает ресурс из корзины; отсутствие записи не ошибка.
func (s *CartService) Remove(ctx context.Context, userUID string, assetID int) error {
	return s.repo.RemoveCartEntry(ctx, userUID, assetID)
}

// List возвращает содержимое корзины пользователя.
func (s *CartService) List(ctx context.Context, userUID string) ([]*models.Asset, error) {
	return s.repo.ListCartAssets(ctx, userUID)
}

// Clear опустошает корзину пользователя.
func (s *CartService) Clear(ctx context.Context, userUID string) error {
	return s.repo.ClearCart(ctx, userUID)
}

// Total возвращает суммарную стоимость корзины; 0 для пустой.
func (s *CartService) Total(ctx context.Context, userUID string) (int, error) {
	return s.repo.CartTotal(ctx, userUID)
}
