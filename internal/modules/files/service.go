package files

import (
	"context"

	"nexusfiles/internal/modules/events"
	"nexusfiles/internal/pkg/sharelink"

	"github.com/sirupsen/logrus"
)

type Service struct {
	files       FileLister
	botUsername string
	publisher   EventPublisher
	log         *logrus.Logger
}

func NewService(files FileLister, botUsername string, publisher EventPublisher, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		files:       files,
		botUsername: botUsername,
		publisher:   publisher,
		log:         log,
	}
}

// List returns all records newest first, optionally filtered by a
// case-insensitive filename substring, with share links resolved.
func (s *Service) List(ctx context.Context, search string) ([]FileResponse, error) {
	records, err := s.files.List(ctx, search)
	if err != nil {
		return nil, err
	}

	out := make([]FileResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, FileResponse{
			ID:               rec.ID,
			FileID:           rec.FileID,
			ShareToken:       rec.ShareToken,
			OriginalFilename: rec.OriginalFilename,
			UploaderID:       rec.UploaderID,
			CreatedAt:        rec.CreatedAt,
			ShareLink:        sharelink.Format(s.botUsername, rec.ShareToken),
		})
	}
	return out, nil
}

// Delete removes a record by id and reports whether a row actually went
// away. Delete on a missing id is not an error, just deleted=false.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.files.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.log.WithField("record_id", id).Info("file record deleted")
		if s.publisher != nil {
			s.publisher.Publish(events.Event{Type: "file_deleted", RecordID: id})
		}
	}
	return deleted, nil
}
