package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

const assetColumns = `id, title, author, author_uid, description, category, asset_type,
			      is_premium, price, image_ref, tags, upload_date, views, downloads, likes, revenue`

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	var a models.Asset
	if err := row.Scan(&a.ID, &a.Title, &a.Author, &a.AuthorUID, &a.Description,
		&a.Category, &a.AssetType, &a.IsPremium, &a.Price, &a.ImageRef, &a.Tags,
		&a.UploadDate, &a.Views, &a.Downloads, &a.Likes, &a.Revenue); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAsset вставляет новый ресурс каталога и возвращает его ID.
func (s *Storage) CreateAsset(ctx context.Context, asset models.Asset) (int, error) {
	const op = "storage.CreateAsset"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO assets (title, author, author_uid, description, category,
			      asset_type, is_premium, price, image_ref, tags)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		asset.Title, asset.Author, asset.AuthorUID, asset.Description, asset.Category,
		asset.AssetType, asset.IsPremium, asset.Price, asset.ImageRef, asset.Tags).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadAsset возвращает ресурс по его ID.
func (s *Storage) ReadAsset(ctx context.Context, id int) (*models.Asset, error) {
	const op = "storage.ReadAsset"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	asset, err := scanAsset(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return asset, nil
}

// ListAssets возвращает страницу ресурсов каталога по фильтру,
// отсортированную от новых к старым.
func (s *Storage) ListAssets(ctx context.Context, filter models.AssetFilter) ([]*models.Asset, error) {
	const op = "storage.ListAssets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + assetColumns + `
			  FROM assets
			  WHERE ($1::text IS NULL OR category = $1)
			    AND ($2::text IS NULL OR asset_type = $2)
			    AND (NOT $3::bool OR is_premium)
			    AND ($4::text = '' OR title ILIKE '%' || $4 || '%'
			         OR author ILIKE '%' || $4 || '%'
			         OR tags ILIKE '%' || $4 || '%')
			  ORDER BY upload_date DESC, id DESC
			  LIMIT $5 OFFSET $6`
	rows, err := s.DB.QueryContext(ctx, query,
		filter.Category, filter.AssetType, filter.PremiumOnly, filter.Search,
		filter.Limit, filter.Offset)
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

// IncrementViews увеличивает счётчик просмотров ресурса на единицу.
// Отсутствие ресурса не является ошибкой.
func (s *Storage) IncrementViews(ctx context.Context, id int) error {
	const op = "storage.IncrementViews"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE assets SET views = views + 1 WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RegisterDownload увеличивает счётчик скачиваний и, при положительной
// сумме, выручку ресурса. Используется для бесплатных скачиваний;
// при оформлении заказа то же обновление выполняется внутри транзакции
// Checkout.
func (s *Storage) RegisterDownload(ctx context.Context, id int, amount int) error {
	const op = "storage.RegisterDownload"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE assets SET downloads = downloads + 1, revenue = revenue + $2 WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ToggleLike переключает лайк пары (пользователь, ресурс) и согласованно
// изменяет счётчик лайков ресурса в одной транзакции. Возвращает true,
// если лайк поставлен, и false, если снят. Для несуществующего ресурса
// возвращает models.ErrNotFound.
func (s *Storage) ToggleLike(ctx context.Context, userUID string, assetID int) (bool, error) {
	const op = "storage.ToggleLike"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var assetExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM assets WHERE id = $1)`, assetID).Scan(&assetExists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !assetExists {
		return false, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_uid = $1 AND asset_id = $2`, userUID, assetID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	liked := removed == 0
	if liked {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO likes (user_uid, asset_id) VALUES ($1, $2)`, userUID, assetID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE assets SET likes = likes + 1 WHERE id = $1`, assetID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			`UPDATE assets SET likes = likes - 1 WHERE id = $1`, assetID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return liked, nil
}

// Stats возвращает сводную статистику каталога.
func (s *Storage) Stats(ctx context.Context) (*models.Stats, error) {
	const op = "storage.Stats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM assets),
			      (SELECT COUNT(*) FROM assets WHERE NOT is_premium),
			      (SELECT COALESCE(SUM(downloads), 0) FROM assets),
			      (SELECT COUNT(*) FROM users)`
	var stats models.Stats
	if err := s.DB.QueryRowContext(ctx, query).Scan(&stats.TotalAssets,
		&stats.FreeAssets, &stats.TotalDownloads, &stats.ActiveUsers); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}
