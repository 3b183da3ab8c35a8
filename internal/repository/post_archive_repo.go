package repository

import (
	"context"

	"github.com/user/article-backup/internal/entity"
)

// PostArchiveRepository keeps a queryable copy of every backed up post.
type PostArchiveRepository interface {
	// SaveRun creates or updates the row describing a run.
	SaveRun(ctx context.Context, status *entity.RunStatus) error
	// Save stores the record for runID. If the post URL already exists, its content is replaced.
	Save(ctx context.Context, runID string, record *entity.PostRecord) error
}
