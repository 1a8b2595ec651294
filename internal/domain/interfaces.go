package domain

import (
	"context"
	"time"

	"lendly/internal/models"
)

// Repository единая точка доступа к хранилищу для сервисного слоя.
// Все межсущностные ссылки разрешаются по идентификаторам через эти методы.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)

	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.Request, error)
	ListRequestsExcludingRequester(ctx context.Context, requesterID int64) ([]*models.Request, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error
	ListBookingsByState(ctx context.Context, userID int64, role models.Role, state models.State) ([]*models.Booking, error)
	ListBookingsByStatus(ctx context.Context, userID int64, role models.Role, status models.Status) ([]*models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, before time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, after time.Time) (*models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
}

// EventPublisher доменные события наружу сервисного слоя.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RequestLimiter скользящее окно запросов на пользователя.
type RequestLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type UserService interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, in models.NewItem) (*models.Item, error)
	Update(ctx context.Context, userID, itemID int64, upd models.ItemUpdate) (*models.Item, error)
	GetDetail(ctx context.Context, itemID int64) (*models.ItemDetail, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	Search(ctx context.Context, text string) ([]*models.Item, error)
	AddComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID int64, in models.NewBooking) (*models.Booking, error)
	SetApproval(ctx context.Context, userID, bookingID int64, approve bool) (*models.Booking, error)
	GetForViewer(ctx context.Context, viewerID, bookingID int64) (*models.Booking, error)
	ListByState(ctx context.Context, userID int64, role models.Role, state models.State) ([]*models.Booking, error)
	ListByStatus(ctx context.Context, userID int64, role models.Role, status models.Status) ([]*models.Booking, error)
}

type RequestService interface {
	Create(ctx context.Context, userID int64, description string) (*models.Request, error)
	GetDetail(ctx context.Context, viewerID, requestID int64) (*models.RequestDetail, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.RequestDetail, error)
	ListOther(ctx context.Context, userID int64) ([]*models.Request, error)
}
