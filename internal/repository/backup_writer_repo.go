package repository

import (
	"context"
	"time"

	"github.com/user/article-backup/internal/entity"
)

// BackupWriterFactory creates the output file of a run.
type BackupWriterFactory interface {
	// Create opens a new backup named after createdAt and writes its header.
	Create(ctx context.Context, createdAt time.Time) (BackupWriter, error)
}

// BackupWriter appends records to a backup as they are extracted.
type BackupWriter interface {
	// Write appends one record and flushes it to storage.
	Write(record *entity.PostRecord) error
	// Path identifies where the backup is stored.
	Path() string
	Close() error
}
