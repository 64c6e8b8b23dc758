package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()

	id, err := NewUserWriteRepository(db).Save(context.Background(), username, "digest", username+"@example.com")
	require.NoError(t, err)
	return id
}

func TestProgressWriteRepository_Insert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")

	writeRepo := NewProgressWriteRepository(db)
	readRepo := NewProgressReadRepository(db)

	assert.NoError(t, writeRepo.Insert(ctx, userID, 1, 3))

	progress, err := readRepo.GetByUserAndLevel(ctx, userID, 1)
	assert.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 3, progress.Stars)
	assert.True(t, progress.Completed)
}

func TestProgressWriteRepository_Insert_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")

	writeRepo := NewProgressWriteRepository(db)

	require.NoError(t, writeRepo.Insert(ctx, userID, 1, 3))
	assert.Error(t, writeRepo.Insert(ctx, userID, 1, 5))
}

func TestProgressWriteRepository_UpdateStars(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")

	writeRepo := NewProgressWriteRepository(db)
	readRepo := NewProgressReadRepository(db)

	require.NoError(t, writeRepo.Insert(ctx, userID, 2, 1))
	assert.NoError(t, writeRepo.UpdateStars(ctx, userID, 2, 3))

	progress, err := readRepo.GetByUserAndLevel(ctx, userID, 2)
	assert.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 3, progress.Stars)
	assert.True(t, progress.Completed)
}

func TestProgressReadRepository_GetByUserAndLevel_NotFound(t *testing.T) {
	db := setupTestDB(t)

	readRepo := NewProgressReadRepository(db)

	progress, err := readRepo.GetByUserAndLevel(context.Background(), 1, 1)
	assert.NoError(t, err)
	assert.Nil(t, progress)
}

func TestProgressReadRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")
	otherID := seedUser(t, db, "bob")

	writeRepo := NewProgressWriteRepository(db)
	readRepo := NewProgressReadRepository(db)

	require.NoError(t, writeRepo.Insert(ctx, userID, 3, 2))
	require.NoError(t, writeRepo.Insert(ctx, userID, 1, 3))
	require.NoError(t, writeRepo.Insert(ctx, otherID, 1, 1))

	progress, err := readRepo.ListByUserID(ctx, userID)
	assert.NoError(t, err)
	require.Len(t, progress, 2)

	// Insertion order, not level order
	assert.Equal(t, int64(3), progress[0].LevelNumber)
	assert.Equal(t, int64(1), progress[1].LevelNumber)
}

func TestProgressReadRepository_ListByUserID_Empty(t *testing.T) {
	db := setupTestDB(t)

	readRepo := NewProgressReadRepository(db)

	progress, err := readRepo.ListByUserID(context.Background(), 42)
	assert.NoError(t, err)
	assert.NotNil(t, progress)
	assert.Empty(t, progress)
}

func TestProgressWriteRepository_DeleteByUserID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userID := seedUser(t, db, "alice")
	otherID := seedUser(t, db, "bob")

	writeRepo := NewProgressWriteRepository(db)
	readRepo := NewProgressReadRepository(db)

	require.NoError(t, writeRepo.Insert(ctx, userID, 1, 3))
	require.NoError(t, writeRepo.Insert(ctx, userID, 2, 2))
	require.NoError(t, writeRepo.Insert(ctx, otherID, 1, 1))

	assert.NoError(t, writeRepo.DeleteByUserID(ctx, userID))

	progress, err := readRepo.ListByUserID(ctx, userID)
	assert.NoError(t, err)
	assert.Empty(t, progress)

	kept, err := readRepo.ListByUserID(ctx, otherID)
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}
