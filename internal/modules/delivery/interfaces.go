package delivery

import (
	"context"

	"nexusfiles/internal/domain"
)

// FileFinder is the read-only slice of the registry the delivery engine
// needs. Delivery never creates or deletes records.
type FileFinder interface {
	FindByToken(ctx context.Context, token string) (*domain.FileRecord, error)
}

// Transport sends stored content to a chat under one content category.
// The cascade tries transports in order because the record does not say
// which category its handle belongs to.
type Transport interface {
	Kind() string
	Send(ctx context.Context, chatID int64, fileID, filename string) error
}
