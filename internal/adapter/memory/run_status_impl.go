package memory

import (
	"context"
	"sync"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

// RunStatusRepoImpl keeps run statuses in process memory. It is used when no
// Redis server is configured.
type RunStatusRepoImpl struct {
	mu   sync.RWMutex
	runs map[string]entity.RunStatus
}

// NewRunStatusRepo creates a new instance of RunStatusRepoImpl.
func NewRunStatusRepo() *RunStatusRepoImpl {
	return &RunStatusRepoImpl{runs: make(map[string]entity.RunStatus)}
}

func (r *RunStatusRepoImpl) Save(ctx context.Context, status *entity.RunStatus) error {
	s := *status
	if status.FinishedAt != nil {
		finishedAt := *status.FinishedAt
		s.FinishedAt = &finishedAt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[status.RunID] = s
	return nil
}

func (r *RunStatusRepoImpl) Find(ctx context.Context, runID string) (*entity.RunStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.runs[runID]
	if !ok {
		return nil, repository.ErrRunNotFound
	}
	return &s, nil
}
