package bot

import (
	"fmt"

	"nexusfiles/internal/modules/ingest"
	"nexusfiles/internal/telegram"
)

// extractUpload reduces a media message to an ingestion request. Photos
// never carry a filename and videos and audio may not, so those get a
// synthetic name derived from the stable file_unique_id.
func extractUpload(msg *telegram.Message) (ingest.Upload, bool) {
	var fileID string
	var filename string

	switch {
	case msg.Document != nil:
		fileID = msg.Document.FileID
		filename = msg.Document.FileName
	case len(msg.Photo) > 0:
		// The last size is the largest rendition.
		photo := msg.Photo[len(msg.Photo)-1]
		fileID = photo.FileID
		filename = fmt.Sprintf("photo_%s.jpg", photo.FileUniqueID)
	case msg.Video != nil:
		fileID = msg.Video.FileID
		filename = msg.Video.FileName
		if filename == "" {
			filename = fmt.Sprintf("video_%s.mp4", msg.Video.FileUniqueID)
		}
	case msg.Audio != nil:
		fileID = msg.Audio.FileID
		filename = msg.Audio.FileName
		if filename == "" {
			filename = fmt.Sprintf("audio_%s.mp3", msg.Audio.FileUniqueID)
		}
	default:
		return ingest.Upload{}, false
	}

	if fileID == "" {
		return ingest.Upload{}, false
	}

	up := ingest.Upload{
		FileID:     fileID,
		UploaderID: msg.From.ID,
	}
	if filename != "" {
		up.Filename = &filename
	}
	return up, true
}
