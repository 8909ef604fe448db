// Package catalog содержит бизнес-логику каталога медиаресурсов:
// выборку и создание ресурсов, счётчики просмотров и лайков,
// бесплатные скачивания и сводную статистику.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/lib/tags"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Пределы пагинации каталога.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const statsCacheTTL = time.Minute

// CatalogRepository определяет методы для работы с каталогом в хранилище.
type CatalogRepository interface {
	// CreateAsset добавляет новый ресурс и возвращает его ID.
	CreateAsset(ctx context.Context, asset models.Asset) (int, error)
	// ReadAsset возвращает ресурс по ID.
	ReadAsset(ctx context.Context, id int) (*models.Asset, error)
	// ListAssets возвращает страницу ресурсов по фильтру.
	ListAssets(ctx context.Context, filter models.AssetFilter) ([]*models.Asset, error)
	// IncrementViews увеличивает счётчик просмотров.
	IncrementViews(ctx context.Context, id int) error
	// RegisterDownload увеличивает счётчик скачиваний и выручку.
	RegisterDownload(ctx context.Context, id int, amount int) error
	// ToggleLike переключает лайк пары (пользователь, ресурс).
	ToggleLike(ctx context.Context, userUID string, assetID int) (bool, error)
	// Stats возвращает сводную статистику каталога.
	Stats(ctx context.Context) (*models.Stats, error)
}

// Entitlements отвечает на вопрос, куплен ли ресурс пользователем.
type Entitlements interface {
	Owns(ctx context.Context, userUID string, assetID int) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога.
type CatalogService struct {
	repo         CatalogRepository
	entitlements Entitlements
	cache        Cache
	log          *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, entitlements Entitlements, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:         repo,
		entitlements: entitlements,
		cache:        cache,
		log:          log,
	}
}

// Create публикует новый ресурс каталога и возвращает его ID.
// Бесплатный ресурс обязан иметь нулевую цену.
func (s *CatalogService) Create(ctx context.Context, authorUID string, req models.DummyAsset) (int, error) {
	if !req.IsPremium && req.Price != 0 {
		return 0, fmt.Errorf("%w: free asset must have zero price", models.ErrInvalidAsset)
	}
	if !slices.Contains(models.Categories, req.Category) {
		return 0, fmt.Errorf("%w: unknown category %s", models.ErrInvalidAsset, req.Category)
	}
	if !slices.Contains(models.AssetTypes, req.AssetType) {
		return 0, fmt.Errorf("%w: unknown asset type %s", models.ErrInvalidAsset, req.AssetType)
	}

	asset := models.Asset{
		Title:       req.Title,
		Author:      req.Author,
		AuthorUID:   authorUID,
		Description: req.Description,
		Category:    req.Category,
		AssetType:   req.AssetType,
		IsPremium:   req.IsPremium,
		Price:       req.Price,
		ImageRef:    req.ImageRef,
		Tags:        tags.Normalize(req.Tags),
	}

	id, err := s.repo.CreateAsset(ctx, asset)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new asset", slog.Int("id", id))

	if err := s.cache.Invalidate("catalog:stats"); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return id, nil
}

// Read возвращает ресурс по ID.
func (s *CatalogService) Read(ctx context.Context, id int) (*models.Asset, error) {
	return s.repo.ReadAsset(ctx, id)
}

// List возвращает страницу каталога по фильтру. Размер страницы
// ограничивается сверху MaxLimit.
func (s *CatalogService) List(ctx context.Context, filter models.AssetFilter) ([]*models.Asset, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListAssets(ctx, filter)
}

// RecordView увеличивает счётчик просмотров. Потеря одного просмотра
// безвредна, поэтому ошибка хранилища лишь логируется и не прерывает
// запрос.
func (s *CatalogService) RecordView(ctx context.Context, id int) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.log.Warn("failed to record view", slog.Int("asset_id", id), sl.Err(err))
	}
}

// ToggleLike переключает лайк пары (пользователь, ресурс).
// Возвращает true, если лайк поставлен.
func (s *CatalogService) ToggleLike(ctx context.Context, userUID string, assetID int) (bool, error) {
	return s.repo.ToggleLike(ctx, userUID, assetID)
}

// Download регистрирует скачивание ресурса и возвращает ссылку на файл.
// Платный ресурс можно скачать только после покупки; выручка при этом
// уже начислена оформлением заказа, поэтому сумма всегда нулевая.
func (s *CatalogService) Download(ctx context.Context, userUID string, assetID int) (string, error) {
	asset, err := s.repo.ReadAsset(ctx, assetID)
	if err != nil {
		return "", err
	}

	if asset.IsPremium {
		owns, err := s.entitlements.Owns(ctx, userUID, assetID)
		if err != nil {
			return "", err
		}
		if !owns {
			return "", models.ErrPremiumOnly
		}
	}

	if err := s.repo.RegisterDownload(ctx, assetID, 0); err != nil {
		return "", err
	}
	return asset.ImageRef, nil
}

// Stats возвращает сводную статистику каталога, кешируя её на короткое
// время.
func (s *CatalogService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats *models.Stats
	found, err := s.cache.Get("catalog:stats", &stats)
	if err != nil {
		s.log.Warn("failed to read stats cache", sl.Err(err))
	}
	if found {
		return stats, nil
	}

	stats, err = s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set("catalog:stats", stats, statsCacheTTL); err != nil {
		s.log.Warn("failed to cache stats", sl.Err(err))
	}
	return stats, nil
}
