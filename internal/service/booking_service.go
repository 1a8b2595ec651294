package service

import (
	"context"
	"fmt"

	"lendly/internal/database"
	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/metrics"
	"lendly/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, eventBus: eventBus, logger: logger}
}

// Create проверяет доступность вещи и временное окно до какой-либо записи.
// Пересечение с другими бронированиями той же вещи сознательно не
// проверяется: клиенты рассчитывают на отсутствие такой проверки.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in models.NewBooking) (*models.Booking, error) {
	booker, err := s.repo.GetUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, database.ErrItemUnavailable
	}
	if in.Start.Equal(in.End) {
		return nil, database.ErrEqualBookingTimes
	}
	if in.End.Before(in.Start) {
		return nil, database.ErrEndBeforeStart
	}

	booking := &models.Booking{
		Start:  in.Start,
		End:    in.End,
		Status: models.StatusWaiting,
		Item:   *item,
		Booker: *booker,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).Msg("booking created")
	metrics.IncBooking("created")
	s.publishEvent(events.EventBookingCreated, booking)

	return booking, nil
}

// SetApproval переводит бронирование из WAITING в конечный статус.
// Делать это может только владелец вещи; повторный вызов просто
// перезаписывает тот же статус.
func (s *BookingService) SetApproval(ctx context.Context, userID, bookingID int64, approve bool) (*models.Booking, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		// Ошибка поиска подтверждающего пользователя оборачивается
		// в ошибку клиента, а не в "не найдено".
		return nil, fmt.Errorf("%w: %s", database.ErrInvalidRequest, err.Error())
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Item.OwnerID != user.ID {
		return nil, database.ErrNotOwner
	}

	status := models.StatusRejected
	outcome := "rejected"
	eventType := events.EventBookingRejected
	if approve {
		status = models.StatusApproved
		outcome = "approved"
		eventType = events.EventBookingApproved
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().Int64("booking_id", bookingID).Str("status", string(status)).Msg("booking approval set")
	metrics.IncBooking(outcome)
	s.publishEvent(eventType, booking)

	return booking, nil
}

// GetForViewer отдает бронирование целиком только владельцу вещи
// или самому арендатору.
func (s *BookingService) GetForViewer(ctx context.Context, viewerID, bookingID int64) (*models.Booking, error) {
	viewer, err := s.repo.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Item.OwnerID != viewer.ID && booking.Booker.ID != viewer.ID {
		return nil, database.ErrAccessDenied
	}

	return booking, nil
}

// ListByState расширенная форма списка: шестизначный фильтр
// по временному окну и статусу.
func (s *BookingService) ListByState(ctx context.Context, userID int64, role models.Role, state models.State) ([]*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByState(ctx, userID, role, state)
}

// ListByStatus простая форма списка: точный статус, пустой - все.
// Обе формы опираются на одно ядро запросов в хранилище.
func (s *BookingService) ListByStatus(ctx context.Context, userID int64, role models.Role, status models.Status) ([]*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByStatus(ctx, userID, role, status)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.Item.ID,
		ItemName:  booking.Item.Name,
		BookerID:  booking.Booker.ID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
