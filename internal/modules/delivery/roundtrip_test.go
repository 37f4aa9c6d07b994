package delivery

import (
	"context"
	"testing"

	"nexusfiles/internal/database"
	"nexusfiles/internal/modules/ingest"
	"nexusfiles/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full path against a real registry: register through the ingestion
// service, then redeem the returned token.
func TestRoundTripRedemption(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	repo := repository.NewFileRepository(db)
	require.NoError(t, repo.Migrate())

	ingestSvc := ingest.NewService(repo, 42, nil, nil)

	name := "report.pdf"
	tok, created, err := ingestSvc.Register(context.Background(), ingest.Upload{
		FileID:     "abc123",
		Filename:   &name,
		UploaderID: 42,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Len(t, tok, 16)

	var calls []string
	deliverySvc := NewService(repo, cascade(&calls, nil), nil)

	require.NoError(t, deliverySvc.Redeem(context.Background(), 555, tok))
	// Document category is attempted first and is the only attempt.
	assert.Equal(t, []string{"document"}, calls)

	// The transport received the registered content handle.
	rec, err := repo.FindByToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "abc123", rec.FileID)
}
