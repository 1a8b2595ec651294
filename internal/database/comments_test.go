package database

import (
	"context"
	"testing"
	"time"

	"lendly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := mustCreateUser(t, db, "Owner", "owner@example.com")
	author := mustCreateUser(t, db, "Author", "author@example.com")
	item := mustCreateItem(t, db, owner, "Drill", "", true)

	first := &models.Comment{Text: "Great drill", ItemID: item.ID, AuthorID: author.ID, Created: time.Now()}
	require.NoError(t, db.CreateComment(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.Comment{Text: "Battery dies fast", ItemID: item.ID, AuthorID: author.ID, Created: time.Now()}
	require.NoError(t, db.CreateComment(ctx, second))

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Great drill", comments[0].Text)
	assert.Equal(t, "Author", comments[0].AuthorName)
	assert.Equal(t, "Battery dies fast", comments[1].Text)
}

func TestListCommentsByItem_Empty(t *testing.T) {
	db := setupTestDB(t)

	comments, err := db.ListCommentsByItem(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
