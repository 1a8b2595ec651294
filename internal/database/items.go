package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lendly/internal/models"
)

func requestIDOrNull(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, requestIDOrNull(item.RequestID))
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	var requestID sql.NullInt64
	query := `SELECT id, name, description, available, owner_id, request_id FROM items WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item with id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	item.RequestID = requestID.Int64
	return item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, item.Name, item.Description, item.Available, item.ID); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

func (db *DB) ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

// SearchAvailableItems ищет подстроку в названии или описании без учета
// регистра, только среди доступных вещей. Пустой текст обрабатывает сервис.
func (db *DB) SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items
              WHERE available = 1
                AND (LOWER(name) LIKE '%' || LOWER(?) || '%'
                  OR LOWER(description) LIKE '%' || LOWER(?) || '%')
              ORDER BY id`
	return db.queryItems(ctx, query, text, text)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		var requestID sql.NullInt64
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.RequestID = requestID.Int64
		items = append(items, item)
	}
	return items, rows.Err()
}
