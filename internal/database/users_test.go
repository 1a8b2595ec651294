package database

import (
	"context"
	"testing"

	"lendly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	err := db.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, first))

	second := &models.User{Name: "Impostor", Email: "alice@example.com"}
	err := db.CreateUser(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))

	user.Name = "Alice B."
	user.Email = "alice.b@example.com"
	require.NoError(t, db.UpdateUser(ctx, user))

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, "alice.b@example.com", got.Email)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, alice))
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.CreateUser(ctx, bob))

	bob.Email = "alice@example.com"
	err := db.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeleteUser_FreesEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	require.NoError(t, db.DeleteUser(ctx, user.ID))

	_, err := db.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Email becomes usable again after deletion
	again := &models.User{Name: "New Alice", Email: "alice@example.com"}
	assert.NoError(t, db.CreateUser(ctx, again))
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com"}))

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}
