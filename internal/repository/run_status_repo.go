package repository

import (
	"context"

	"github.com/user/article-backup/internal/entity"
)

// RunStatusRepository stores run progress so it can be inspected while a run is going.
type RunStatusRepository interface {
	// Save creates or replaces the status of status.RunID.
	Save(ctx context.Context, status *entity.RunStatus) error
	// Find returns ErrRunNotFound for unknown IDs.
	Find(ctx context.Context, runID string) (*entity.RunStatus, error)
}
