package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Checkout атомарно оформляет заказ по текущей корзине пользователя:
// в одной транзакции читает и блокирует записи корзины, создаёт
// транзакцию и покупки, увеличивает счётчики скачиваний и выручку
// ресурсов и очищает корзину. Любая ошибка откатывает всё оформление
// целиком: ни частичных покупок, ни частичных счётчиков, корзина
// остаётся нетронутой.
//
// Возвращает models.ErrEmptyCart для пустой корзины и
// models.ErrAlreadyPurchased, если какая-то пара (пользователь, ресурс)
// уже куплена — например, параллельным оформлением. Уникальный индекс
// purchases (user_uid, asset_id) служит последней линией защиты от
// двойного списания.
func (s *Storage) Checkout(ctx context.Context, userUID string) (*models.Transaction, []int, error) {
	const op = "storage.Checkout"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT c.asset_id, a.price
		 FROM cart_entries c
		 JOIN assets a ON a.id = c.asset_id
		 WHERE c.user_uid = $1
		 ORDER BY c.added_at, a.id
		 FOR UPDATE OF c`, userUID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	type cartItem struct {
		assetID int
		price   int
	}
	var items []cartItem
	for rows.Next() {
		var item cartItem
		if err := rows.Scan(&item.assetID, &item.price); err != nil {
			_ = rows.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = rows.Close()

	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, models.ErrEmptyCart)
	}

	result := &models.Transaction{
		UserUID: userUID,
		Status:  models.StatusCompleted,
	}
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO transactions (user_uid, total, status)
		 VALUES ($1, 0, $2)
		 RETURNING id, created_at`,
		userUID, models.StatusCompleted).Scan(&result.ID, &result.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	assetIDs := make([]int, 0, len(items))
	for _, item := range items {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_uid = $1 AND asset_id = $2)`,
			userUID, item.assetID).Scan(&exists); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			return nil, nil, fmt.Errorf("%s: asset %d: %w", op, item.assetID, models.ErrAlreadyPurchased)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (user_uid, asset_id, price_paid, transaction_id)
			 VALUES ($1, $2, $3, $4)`,
			userUID, item.assetID, item.price, result.ID); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE assets SET downloads = downloads + 1, revenue = revenue + $2 WHERE id = $1`,
			item.assetID, item.price); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		result.Total += item.price
		assetIDs = append(assetIDs, item.assetID)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET total = $2 WHERE id = $1`, result.ID, result.Total); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_entries WHERE user_uid = $1`, userUID); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, assetIDs, nil
}

// ExistsPurchase сообщает, существует ли покупка для пары
// (пользователь, ресурс).
func (s *Storage) ExistsPurchase(ctx context.Context, userUID string, assetID int) (bool, error) {
	const op = "storage.ExistsPurchase"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM purchases WHERE user_uid = $1 AND asset_id = $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, assetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListPurchases возвращает покупки пользователя от новых к старым.
func (s *Storage) ListPurchases(ctx context.Context, userUID string, limit, offset int) ([]*models.Purchase, error) {
	const op = "storage.ListPurchases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, asset_id, price_paid, transaction_id, created_at
			  FROM purchases
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.UserUID, &p.AssetID, &p.PricePaid,
			&p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTransactions возвращает транзакции пользователя от новых к старым.
func (s *Storage) ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, total, status, created_at
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserUID, &t.Total, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
