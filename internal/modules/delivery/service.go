package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nexusfiles/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	files      FileFinder
	transports []Transport
	log        *logrus.Logger
}

func NewService(files FileFinder, transports []Transport, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		files:      files,
		transports: transports,
		log:        log,
	}
}

// Redeem resolves a share token and delivers the content to chatID
// through the transport cascade. Exactly one transport call succeeds on
// the happy path; on a miss no transport is attempted at all.
func (s *Service) Redeem(ctx context.Context, chatID int64, shareToken string) error {
	rec, err := s.files.FindByToken(ctx, shareToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	var attempted []string
	for _, t := range s.transports {
		sendErr := t.Send(ctx, chatID, rec.FileID, rec.Filename())
		if sendErr == nil {
			return nil
		}
		attempted = append(attempted, t.Kind())
		s.log.WithFields(logrus.Fields{
			"token":    shareToken,
			"category": t.Kind(),
		}).WithError(sendErr).Debug("delivery transport failed, trying next category")
	}

	s.log.WithFields(logrus.Fields{
		"token":     shareToken,
		"file_id":   rec.FileID,
		"attempted": strings.Join(attempted, ","),
	}).Error("delivery exhausted every transport category")
	return fmt.Errorf("%w: attempted %s", ErrExhausted, strings.Join(attempted, ", "))
}
