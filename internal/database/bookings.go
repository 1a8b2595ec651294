package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendly/internal/models"
)

// bookingSelect единое ядро запросов: бронирование читается сразу
// с развернутыми вещью и арендатором.
const bookingSelect = `SELECT b.id, b.start_date, b.end_date, b.status,
       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
       u.id, u.name, u.email
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

type bookingScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingScanner) (*models.Booking, error) {
	b := &models.Booking{}
	var requestID sql.NullInt64
	var status string
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID, &requestID,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
	)
	if err != nil {
		return nil, err
	}
	b.Item.RequestID = requestID.Int64
	b.Status, err = models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %d carries %s", ErrConflict, b.ID, err)
	}
	return b, nil
}

// CreateBooking вставляет бронирование и перечитывает его с развернутыми
// связями внутри одной транзакции.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		booking.Start.UTC(), booking.End.UTC(), booking.Item.ID, booking.Booker.ID, string(booking.Status))
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	created, err := scanBooking(tx.QueryRowContext(ctx, bookingSelect+" WHERE b.id = ?", id))
	if err != nil {
		return fmt.Errorf("failed to read back booking: %w", err)
	}
	*booking = *created

	return tx.Commit()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, bookingSelect+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking with id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus перезаписывает статус. Повторная установка того же
// статуса не считается ошибкой.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, string(status), id); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

func rolePredicate(role models.Role) (string, error) {
	switch role {
	case models.RoleBooker:
		return "b.booker_id = ?", nil
	case models.RoleOwner:
		return "i.owner_id = ?", nil
	default:
		return "", ErrUnknownRole
	}
}

// ListBookingsByState шестизначный фильтр: временная классификация
// относительно текущего момента либо точный статус.
func (db *DB) ListBookingsByState(ctx context.Context, userID int64, role models.Role, state models.State) ([]*models.Booking, error) {
	who, err := rolePredicate(role)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cond := " WHERE " + who
	args := []any{userID}

	switch state {
	case models.StateAll:
	case models.StateCurrent:
		// CURRENT: start < now <= end
		cond += " AND b.start_date < ? AND b.end_date >= ?"
		args = append(args, now, now)
	case models.StatePast:
		cond += " AND b.end_date < ?"
		args = append(args, now)
	case models.StateFuture:
		cond += " AND b.start_date >= ?"
		args = append(args, now)
	case models.StateWaiting:
		cond += " AND b.status = ?"
		args = append(args, string(models.StatusWaiting))
	case models.StateRejected:
		cond += " AND b.status = ?"
		args = append(args, string(models.StatusRejected))
	default:
		return nil, fmt.Errorf("%w: unsupported booking state %q", ErrInvalidRequest, state)
	}

	return db.queryBookings(ctx, cond, args...)
}

// ListBookingsByStatus простой фильтр по точному статусу;
// пустой статус означает все бронирования.
func (db *DB) ListBookingsByStatus(ctx context.Context, userID int64, role models.Role, status models.Status) ([]*models.Booking, error) {
	who, err := rolePredicate(role)
	if err != nil {
		return nil, err
	}

	cond := " WHERE " + who
	args := []any{userID}
	if status != "" {
		cond += " AND b.status = ?"
		args = append(args, string(status))
	}

	return db.queryBookings(ctx, cond, args...)
}

// ListAllBookings полный снимок для выгрузки отчета.
func (db *DB) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	return db.queryBookings(ctx, "")
}

func (db *DB) queryBookings(ctx context.Context, cond string, args ...any) ([]*models.Booking, error) {
	query := bookingSelect + cond + " ORDER BY b.start_date, b.end_date"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// LastBookingForItem самое позднее бронирование вещи, начавшееся до before.
// Отсутствие не является ошибкой.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, before time.Time) (*models.Booking, error) {
	query := bookingSelect + " WHERE b.item_id = ? AND b.start_date < ? ORDER BY b.start_date DESC LIMIT 1"
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, before.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

// NextBookingForItem ближайшее бронирование вещи, начинающееся после after.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, after time.Time) (*models.Booking, error) {
	query := bookingSelect + " WHERE b.item_id = ? AND b.start_date > ? ORDER BY b.start_date ASC LIMIT 1"
	booking, err := scanBooking(db.QueryRowContext(ctx, query, itemID, after.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// HasFinishedBooking было ли у пользователя бронирование этой вещи,
// закончившееся до before.
func (db *DB) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE item_id = ? AND booker_id = ? AND end_date < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, bookerID, before.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count > 0, nil
}
