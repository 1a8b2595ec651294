package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lendly/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.Request) error {
	query := `INSERT INTO requests (description, requester_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.Description, request.RequesterID, request.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	request := &models.Request{}
	query := `SELECT id, description, requester_id, created FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.Description, &request.RequesterID, &request.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request with id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

// ListRequestsByRequester возвращает запросы пользователя, новые сначала.
func (db *DB) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, created
              FROM requests WHERE requester_id = ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requesterID)
}

// ListRequestsExcludingRequester возвращает запросы всех остальных пользователей.
func (db *DB) ListRequestsExcludingRequester(ctx context.Context, requesterID int64) ([]*models.Request, error) {
	query := `SELECT id, description, requester_id, created
              FROM requests WHERE requester_id != ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requesterID)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		r := &models.Request{}
		if err := rows.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
