package ingest

import (
	"context"

	"nexusfiles/internal/domain"
	"nexusfiles/internal/modules/events"
)

// FileRegistry is the slice of the registry the ingestion path uses:
// dedup lookup plus insert. Ingestion never deletes.
type FileRegistry interface {
	FindByFileID(ctx context.Context, fileID string) (*domain.FileRecord, error)
	Insert(ctx context.Context, rec *domain.FileRecord) (*domain.FileRecord, error)
}

// EventPublisher receives a notification for every newly stored record.
type EventPublisher interface {
	Publish(event events.Event)
}
