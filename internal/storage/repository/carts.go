package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// AddCartEntry добавляет ресурс в корзину пользователя. Повторное
// добавление уже лежащего в корзине ресурса не создаёт дубликата
// и не является ошибкой.
func (s *Storage) AddCartEntry(ctx context.Context, userUID string, assetID int) error {
	const op = "storage.AddCartEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_entries (user_uid, asset_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, asset_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userUID, assetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveCartEntry удаляет ресурс из корзины. Отсутствие записи
// не является ошибкой.
func (s *Storage) RemoveCartEntry(ctx context.Context, userUID string, assetID int) error {
	const op = "storage.RemoveCartEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_entries WHERE user_uid = $1 AND asset_id = $2`
	if _, err := s.DB.ExecContext(ctx, query, userUID, assetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListCartAssets возвращает ресурсы в корзине пользователя в порядке
// добавления. Записи без ресурса и записи об уже купленных ресурсах
// исключаются из выборки.
func (s *Storage) ListCartAssets(ctx context.Context, userUID string) ([]*models.Asset, error) {
	const op = "storage.ListCartAssets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.title, a.author, a.author_uid, a.description, a.category,
			      a.asset_type, a.is_premium, a.price, a.image_ref, a.tags, a.upload_date,
			      a.views, a.downloads, a.likes, a.revenue
			  FROM cart_entries c
			  JOIN assets a ON a.id = c.asset_id
			  WHERE c.user_uid = $1
			    AND NOT EXISTS (
			        SELECT 1 FROM purchases p
			        WHERE p.user_uid = c.user_uid AND p.asset_id = c.asset_id)
			  ORDER BY c.added_at, a.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Asset
	for rows.Next() {
		item, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ClearCart удаляет все записи корзины пользователя.
func (s *Storage) ClearCart(ctx context.Context, userUID string) error {
	const op = "storage.ClearCart"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_entries WHERE user_uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CartTotal возвращает суммарную стоимость корзины пользователя;
// 0 для пустой корзины.
func (s *Storage) CartTotal(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CartTotal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(a.price), 0)
			  FROM cart_entries c
			  JOIN assets a ON a.id = c.asset_id
			  WHERE c.user_uid = $1
			    AND NOT EXISTS (
			        SELECT 1 FROM purchases p
			        WHERE p.user_uid = c.user_uid AND p.asset_id = c.asset_id)`
	var total int
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
