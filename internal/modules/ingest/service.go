package ingest

import (
	"context"
	"errors"

	"nexusfiles/internal/domain"
	"nexusfiles/internal/modules/events"
	"nexusfiles/internal/pkg/token"
	"nexusfiles/internal/repository"

	"github.com/sirupsen/logrus"
)

// maxTokenRetries bounds how many fresh tokens Register mints when the
// store rejects one as a duplicate.
const maxTokenRetries = 3

// Upload is an inbound registration request, already reduced to the
// fields the core cares about.
type Upload struct {
	FileID     string
	Filename   *string
	UploaderID int64
}

type Service struct {
	files     FileRegistry
	adminID   int64
	publisher EventPublisher
	log       *logrus.Logger

	// mint is swappable in tests to force collisions.
	mint func() (string, error)
}

func NewService(files FileRegistry, adminID int64, publisher EventPublisher, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		files:     files,
		adminID:   adminID,
		publisher: publisher,
		log:       log,
		mint:      token.Mint,
	}
}

// Register stores an upload exactly once and returns its share token.
// created reports whether a new record was inserted (false on the dedup
// path). Concurrent registration of the same handle converges on one
// record: the loser of the insert race re-reads the winner's token.
func (s *Service) Register(ctx context.Context, up Upload) (shareToken string, created bool, err error) {
	if up.UploaderID != s.adminID {
		s.log.WithField("uploader_id", up.UploaderID).Warn("unauthorized file upload attempt")
		return "", false, ErrUnauthorized
	}

	existing, err := s.files.FindByFileID(ctx, up.FileID)
	switch {
	case err == nil:
		return existing.ShareToken, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return "", false, err
	}

	for attempt := 0; attempt < maxTokenRetries; attempt++ {
		tok, err := s.mint()
		if err != nil {
			return "", false, err
		}

		stored, err := s.files.Insert(ctx, &domain.FileRecord{
			FileID:           up.FileID,
			ShareToken:       tok,
			OriginalFilename: up.Filename,
			UploaderID:       up.UploaderID,
		})
		if err == nil {
			s.log.WithFields(logrus.Fields{
				"file_id":  up.FileID,
				"token":    tok,
				"uploader": up.UploaderID,
			}).Info("file record stored")
			if s.publisher != nil {
				s.publisher.Publish(events.Event{
					Type:       "file_stored",
					RecordID:   stored.ID,
					ShareToken: stored.ShareToken,
					Filename:   stored.Filename(),
				})
			}
			return stored.ShareToken, true, nil
		}

		var dup *repository.DuplicateError
		if !errors.As(err, &dup) {
			return "", false, err
		}

		switch dup.Column {
		case repository.ColumnShareToken:
			// Mint again; the store's unique index is the only
			// authoritative collision check.
			continue
		case repository.ColumnFileID:
			return s.resolveRace(ctx, up.FileID)
		default:
			// Backend could not say which column fired. If the handle
			// is now present we lost a registration race; otherwise
			// assume a token collision and retry.
			if winner, ferr := s.files.FindByFileID(ctx, up.FileID); ferr == nil {
				return winner.ShareToken, false, nil
			} else if !errors.Is(ferr, repository.ErrNotFound) {
				return "", false, ferr
			}
			continue
		}
	}

	s.log.WithField("file_id", up.FileID).Error("token collision retries exhausted")
	return "", false, ErrTokenExhausted
}

// resolveRace handles a duplicate on the handle column: another request
// inserted this content between our dedup check and insert. The winner's
// token is the correct answer.
func (s *Service) resolveRace(ctx context.Context, fileID string) (string, bool, error) {
	winner, err := s.files.FindByFileID(ctx, fileID)
	if err != nil {
		return "", false, err
	}
	return winner.ShareToken, false, nil
}
