package files

import (
	"context"

	"nexusfiles/internal/domain"
	"nexusfiles/internal/modules/events"
)

// FileLister is the dashboard's boundary with the registry: read and
// delete only, never insert.
type FileLister interface {
	List(ctx context.Context, search string) ([]domain.FileRecord, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

type EventPublisher interface {
	Publish(event events.Event)
}
