package repository

import (
	"context"
	"testing"
	"time"

	"nexusfiles/internal/database"
	"nexusfiles/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *FileRepository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	repo := NewFileRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func insert(t *testing.T, repo *FileRepository, fileID, token string, name *string) *domain.FileRecord {
	t.Helper()
	rec, err := repo.Insert(context.Background(), &domain.FileRecord{
		FileID:           fileID,
		ShareToken:       token,
		OriginalFilename: name,
		UploaderID:       42,
	})
	require.NoError(t, err)
	return rec
}

func strPtr(s string) *string { return &s }

func TestInsertAssignsIDAndTimestamp(t *testing.T) {
	repo := setupRepo(t)

	rec := insert(t, repo, "abc123", "feedfacefeedface", strPtr("report.pdf"))
	assert.Positive(t, rec.ID)
	assert.WithinDuration(t, time.Now(), rec.CreatedAt, 5*time.Second)
}

func TestInsertDuplicateFileID(t *testing.T) {
	repo := setupRepo(t)
	insert(t, repo, "abc123", "feedfacefeedface", nil)

	_, err := repo.Insert(context.Background(), &domain.FileRecord{
		FileID:     "abc123",
		ShareToken: "0123456789abcdef",
		UploaderID: 42,
	})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, ColumnFileID, dup.Column)
}

func TestInsertDuplicateShareToken(t *testing.T) {
	repo := setupRepo(t)
	insert(t, repo, "abc123", "feedfacefeedface", nil)

	_, err := repo.Insert(context.Background(), &domain.FileRecord{
		FileID:     "other456",
		ShareToken: "feedfacefeedface",
		UploaderID: 42,
	})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, ColumnShareToken, dup.Column)
}

func TestFindByTokenAndFileID(t *testing.T) {
	repo := setupRepo(t)
	insert(t, repo, "abc123", "feedfacefeedface", strPtr("report.pdf"))

	byToken, err := repo.FindByToken(context.Background(), "feedfacefeedface")
	require.NoError(t, err)
	assert.Equal(t, "abc123", byToken.FileID)

	byFileID, err := repo.FindByFileID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "feedfacefeedface", byFileID.ShareToken)

	// Exact match only, no partial lookup.
	_, err = repo.FindByToken(context.Background(), "feedface")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByFileID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	repo := setupRepo(t)
	first := insert(t, repo, "f1", "aaaaaaaaaaaaaaaa", strPtr("oldest.pdf"))
	second := insert(t, repo, "f2", "bbbbbbbbbbbbbbbb", strPtr("newest.pdf"))

	records, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestListFilterIsCaseInsensitiveSubstring(t *testing.T) {
	repo := setupRepo(t)
	insert(t, repo, "f1", "aaaaaaaaaaaaaaaa", strPtr("Quarterly Report.pdf"))
	insert(t, repo, "f2", "bbbbbbbbbbbbbbbb", strPtr("holiday.jpg"))
	insert(t, repo, "f3", "cccccccccccccccc", nil)

	records, err := repo.List(context.Background(), "REPORT")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "f1", records[0].FileID)

	// Substring, not prefix: matches mid-name too.
	records, err = repo.List(context.Background(), "arterly")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDeleteByID(t *testing.T) {
	repo := setupRepo(t)
	rec := insert(t, repo, "abc123", "feedfacefeedface", nil)

	deleted, err := repo.DeleteByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindByToken(context.Background(), "feedfacefeedface")
	assert.ErrorIs(t, err, ErrNotFound)

	// Idempotent: missing id reports false without error.
	deleted, err = repo.DeleteByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteByID(context.Background(), 99999)
	require.NoError(t, err)
	assert.False(t, deleted)
}
