package files

import "time"

type FileResponse struct {
	ID               int64     `json:"id"`
	FileID           string    `json:"file_id"`
	ShareToken       string    `json:"share_token"`
	OriginalFilename *string   `json:"original_filename"`
	UploaderID       int64     `json:"uploader_id"`
	CreatedAt        time.Time `json:"created_at"`
	ShareLink        string    `json:"share_link"`
}

type ListResponse struct {
	Files []FileResponse `json:"files"`
	Total int            `json:"total"`
}
