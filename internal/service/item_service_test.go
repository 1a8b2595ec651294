package service

import (
	"context"
	"testing"
	"time"

	"lendly/internal/database"
	"lendly/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	owner := &models.User{ID: 1, Name: "Owner"}

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("GetUser", ctx, int64(1)).Return(owner, nil).Once()
		repo.On("CreateItem", ctx, mock.MatchedBy(func(i *models.Item) bool {
			return i.Name == "Drill" && i.OwnerID == 1
		})).Return(nil).Once()

		item, err := svc.Create(ctx, 1, models.NewItem{Name: "Drill", Available: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), item.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("GetUser", ctx, int64(99)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.Create(ctx, 99, models.NewItem{Name: "Drill"})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("unknown request reference", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("GetUser", ctx, int64(1)).Return(owner, nil).Once()
		repo.On("GetRequest", ctx, int64(77)).Return(nil, database.ErrNotFound).Once()

		_, err := svc.Create(ctx, 1, models.NewItem{Name: "Drill", RequestID: 77})
		assert.ErrorIs(t, err, database.ErrNotFound)
		repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	owner := &models.User{ID: 1}
	item := func() *models.Item {
		return &models.Item{ID: 10, Name: "Drill", Description: "Old", Available: true, OwnerID: 1}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("GetUser", ctx, int64(1)).Return(owner, nil).Once()
		repo.On("GetItem", ctx, int64(10)).Return(item(), nil).Once()
		repo.On("UpdateItem", ctx, mock.MatchedBy(func(i *models.Item) bool {
			return i.Name == "Drill" && i.Description == "New" && !i.Available
		})).Return(nil).Once()

		got, err := svc.Update(ctx, 1, 10, models.ItemUpdate{Description: strPtr("New"), Available: boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, "Drill", got.Name)
		assert.Equal(t, "New", got.Description)
	})

	t.Run("non-owner gets a conflict", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		stranger := &models.User{ID: 2}
		repo.On("GetUser", ctx, int64(2)).Return(stranger, nil).Once()
		repo.On("GetItem", ctx, int64(10)).Return(item(), nil).Once()

		_, err := svc.Update(ctx, 2, 10, models.ItemUpdate{Name: strPtr("Stolen")})
		assert.ErrorIs(t, err, database.ErrNotItemOwner)
		assert.ErrorIs(t, err, database.ErrConflict)
		repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})
}

func TestItemService_GetDetail(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("aggregates bookings and comments", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		item := &models.Item{ID: 10, Name: "Drill", OwnerID: 1}
		last := &models.Booking{ID: 4}
		next := &models.Booking{ID: 5}
		comments := []models.Comment{{ID: 1, Text: "Nice"}}

		repo.On("GetItem", ctx, int64(10)).Return(item, nil).Once()
		repo.On("LastBookingForItem", ctx, int64(10), mock.Anything).Return(last, nil).Once()
		repo.On("NextBookingForItem", ctx, int64(10), mock.Anything).Return(next, nil).Once()
		repo.On("ListCommentsByItem", ctx, int64(10)).Return(comments, nil).Once()

		detail, err := svc.GetDetail(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "Drill", detail.Name)
		assert.Equal(t, int64(4), detail.LastBooking.ID)
		assert.Equal(t, int64(5), detail.NextBooking.ID)
		assert.Len(t, detail.Comments, 1)
	})

	t.Run("fresh item has nil bookings and empty comments", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		item := &models.Item{ID: 10, Name: "Drill", OwnerID: 1}
		repo.On("GetItem", ctx, int64(10)).Return(item, nil).Once()
		repo.On("LastBookingForItem", ctx, int64(10), mock.Anything).Return(nil, nil).Once()
		repo.On("NextBookingForItem", ctx, int64(10), mock.Anything).Return(nil, nil).Once()
		repo.On("ListCommentsByItem", ctx, int64(10)).Return([]models.Comment{}, nil).Once()

		detail, err := svc.GetDetail(ctx, 10)
		require.NoError(t, err)
		assert.Nil(t, detail.LastBooking)
		assert.Nil(t, detail.NextBooking)
		assert.Empty(t, detail.Comments)
	})
}

func TestItemService_Search(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("blank text short-circuits", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		for _, text := range []string{"", "   ", "\t"} {
			items, err := svc.Search(ctx, text)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		}
		repo.AssertNotCalled(t, "SearchAvailableItems", mock.Anything, mock.Anything)
	})

	t.Run("delegates to storage", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("SearchAvailableItems", ctx, "drill").Return([]*models.Item{{ID: 10}}, nil).Once()

		items, err := svc.Search(ctx, "drill")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestItemService_AddComment(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	author := &models.User{ID: 2, Name: "Renter"}
	item := &models.Item{ID: 10, Name: "Drill", OwnerID: 1}

	t.Run("requires a finished booking", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewItemService(repo, nil, &logger)

		repo.On("GetUser", ctx, int64(2)).Return(author, nil).Once()
		repo.On("GetItem", ctx, int64(10)).Return(item, nil).Once()
		repo.On("HasFinishedBooking", ctx, int64(10), int64(2), mock.Anything).Return(false, nil).Once()

		_, err := svc.AddComment(ctx, 2, 10, "Great drill")
		assert.ErrorIs(t, err, database.ErrNoFinishedBooking)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("denormalizes the author name", func(t *testing.T) {
		repo := new(mockRepo)
		bus := new(mockEventBus)
		svc := NewItemService(repo, bus, &logger)

		repo.On("GetUser", ctx, int64(2)).Return(author, nil).Once()
		repo.On("GetItem", ctx, int64(10)).Return(item, nil).Once()
		repo.On("HasFinishedBooking", ctx, int64(10), int64(2), mock.Anything).Return(true, nil).Once()
		repo.On("CreateComment", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.AuthorName == "Renter" && c.Text == "Great drill" && !c.Created.IsZero()
		})).Return(nil).Once()
		bus.On("PublishJSON", "comment_added", mock.Anything).Return(nil).Once()

		comment, err := svc.AddComment(ctx, 2, 10, "Great drill")
		require.NoError(t, err)
		assert.Equal(t, "Renter", comment.AuthorName)
		assert.WithinDuration(t, time.Now(), comment.Created, time.Minute)
		repo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})
}
