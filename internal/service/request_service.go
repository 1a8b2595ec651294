package service

import (
	"context"
	"time"

	"lendly/internal/domain"
	"lendly/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

// Create время создания назначает сервер, клиентское значение игнорируется.
// Запрос после создания неизменяем.
func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*models.Request, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.Request{
		Description: description,
		RequesterID: userID,
		Created:     time.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", userID).Msg("request created")
	return request, nil
}

// GetDetail запрос вместе со всеми вещами, созданными для него.
func (s *RequestService) GetDetail(ctx context.Context, viewerID, requestID int64) (*models.RequestDetail, error) {
	if _, err := s.repo.GetUser(ctx, viewerID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	detail := &models.RequestDetail{Request: *request, Items: make([]models.Item, 0, len(items))}
	for _, item := range items {
		detail.Items = append(detail.Items, *item)
	}
	return detail, nil
}

// ListForUser собственные запросы пользователя, новые сначала,
// каждый развернут до деталей.
func (s *RequestService) ListForUser(ctx context.Context, userID int64) ([]*models.RequestDetail, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*models.RequestDetail, 0, len(requests))
	for _, request := range requests {
		detail, err := s.GetDetail(ctx, userID, request.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// ListOther чужие запросы, без разворачивания вещей.
func (s *RequestService) ListOther(ctx context.Context, userID int64) ([]*models.Request, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListRequestsExcludingRequester(ctx, userID)
}
