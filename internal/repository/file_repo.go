package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexusfiles/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

type fileModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	FileID           string    `gorm:"column:file_id;not null;uniqueIndex:idx_hosted_files_file_id"`
	ShareToken       string    `gorm:"column:share_token;not null;uniqueIndex:idx_hosted_files_share_token"`
	OriginalFilename *string   `gorm:"column:original_filename"`
	UploaderID       int64     `gorm:"column:uploader_id;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (fileModel) TableName() string { return "hosted_files" }

func toDomainFile(m fileModel) *domain.FileRecord {
	return &domain.FileRecord{
		ID:               m.ID,
		FileID:           m.FileID,
		ShareToken:       m.ShareToken,
		OriginalFilename: m.OriginalFilename,
		UploaderID:       m.UploaderID,
		CreatedAt:        m.CreatedAt,
	}
}

// Migrate creates or updates the hosted_files table and its unique indexes.
func (r *FileRepository) Migrate() error {
	return r.db.AutoMigrate(&fileModel{})
}

// Insert stores a new record and returns it with the assigned id and
// timestamp. Unique-constraint violations come back as *DuplicateError;
// everything else from the backend is wrapped in ErrStoreUnavailable.
func (r *FileRepository) Insert(ctx context.Context, rec *domain.FileRecord) (*domain.FileRecord, error) {
	m := fileModel{
		FileID:           rec.FileID,
		ShareToken:       rec.ShareToken,
		OriginalFilename: rec.OriginalFilename,
		UploaderID:       rec.UploaderID,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if dup := classifyDuplicate(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return toDomainFile(m), nil
}

func (r *FileRepository) FindByToken(ctx context.Context, token string) (*domain.FileRecord, error) {
	return r.findOne(ctx, "share_token = ?", token)
}

// FindByFileID looks up a record by content handle. Used only for dedup
// on the ingestion path, never for end-user retrieval.
func (r *FileRepository) FindByFileID(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	return r.findOne(ctx, "file_id = ?", fileID)
}

func (r *FileRepository) findOne(ctx context.Context, query string, arg any) (*domain.FileRecord, error) {
	var m fileModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return toDomainFile(m), nil
}

// List returns all records, newest first. A non-empty search restricts to
// records whose original_filename contains it, case-insensitively.
func (r *FileRepository) List(ctx context.Context, search string) ([]domain.FileRecord, error) {
	q := r.db.WithContext(ctx).Model(&fileModel{}).Order("created_at DESC, id DESC")
	if search != "" {
		q = q.Where("LOWER(original_filename) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var models []fileModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	records := make([]domain.FileRecord, 0, len(models))
	for _, m := range models {
		records = append(records, *toDomainFile(m))
	}
	return records, nil
}

// DeleteByID removes a record by primary key. It is idempotent and reports
// whether a row was actually removed, so callers never mistake a missing
// id for a successful delete.
func (r *FileRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&fileModel{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// classifyDuplicate recognizes unique-constraint violations from both
// backends. Postgres reports SQLSTATE 23505 with the constraint name;
// SQLite reports "UNIQUE constraint failed: <table>.<column>". Returns
// nil when err is not a duplicate.
func classifyDuplicate(err error) *DuplicateError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return nil
		}
		switch {
		case strings.Contains(pgErr.ConstraintName, "file_id"):
			return &DuplicateError{Column: ColumnFileID}
		case strings.Contains(pgErr.ConstraintName, "share_token"):
			return &DuplicateError{Column: ColumnShareToken}
		}
		return &DuplicateError{}
	}

	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "hosted_files.file_id"):
			return &DuplicateError{Column: ColumnFileID}
		case strings.Contains(msg, "hosted_files.share_token"):
			return &DuplicateError{Column: ColumnShareToken}
		}
		return &DuplicateError{}
	}
	return nil
}
