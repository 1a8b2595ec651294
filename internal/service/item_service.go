package service

import (
	"context"
	"strings"
	"time"

	"lendly/internal/database"
	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/models"

	"github.com/rs/zerolog"
)

// lastBookingSkew сдвиг при поиске "последнего" бронирования: только что
// начавшееся бронирование не должно классифицироваться как прошлое.
const lastBookingSkew = 30 * time.Second

type ItemService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, in models.NewItem) (*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if in.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, in.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

// Update частичное обновление: перезаписываются только переданные поля.
// Владелец неизменяем после создания.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, upd models.ItemUpdate) (*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != userID {
		return nil, database.ErrNotItemOwner
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Msg("item updated")
	return item, nil
}

// GetDetail собирает витрину вещи из трех независимых чтений: сама вещь,
// два одиночных бронирования и отзывы. Снимок не атомарен, согласованность
// каждого чтения обеспечивает хранилище.
func (s *ItemService) GetDetail(ctx context.Context, itemID int64) (*models.ItemDetail, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	last, err := s.repo.LastBookingForItem(ctx, itemID, now.Add(-lastBookingSkew))
	if err != nil {
		return nil, err
	}
	next, err := s.repo.NextBookingForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return &models.ItemDetail{
		Item:        *item,
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListItemsByOwner(ctx, ownerID)
}

// Search пустой или пробельный текст дает пустой результат,
// а не весь каталог.
func (s *ItemService) Search(ctx context.Context, text string) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, text)
}

// AddComment отзыв принимается только от пользователя с завершенным
// бронированием именно этой вещи.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	rented, err := s.repo.HasFinishedBooking(ctx, itemID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, database.ErrNoFinishedBooking
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: user.Name,
		Created:    time.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("comment added")
	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: itemID, AuthorID: userID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment, nil
}
