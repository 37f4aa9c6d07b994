package domain

import "time"

// FileRecord is a hosted file registered by the admin. FileID names the
// content inside Telegram's namespace; ShareToken is the independently
// minted identifier embedded in public share links.
type FileRecord struct {
	ID               int64     `json:"id"`
	FileID           string    `json:"file_id"`
	ShareToken       string    `json:"share_token"`
	OriginalFilename *string   `json:"original_filename"`
	UploaderID       int64     `json:"uploader_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// Filename returns the display name or an empty string when none was
// captured at ingestion time.
func (r *FileRecord) Filename() string {
	if r.OriginalFilename == nil {
		return ""
	}
	return *r.OriginalFilename
}
