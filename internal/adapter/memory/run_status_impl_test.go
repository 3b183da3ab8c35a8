package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

func TestRunStatusRepo(t *testing.T) {
	repo := NewRunStatusRepo()
	ctx := context.Background()

	_, err := repo.Find(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrRunNotFound)

	status := &entity.RunStatus{RunID: "run-1", State: entity.RunRunning, Listed: 3}
	require.NoError(t, repo.Save(ctx, status))

	// Later changes by the caller are not visible until saved again.
	status.Written = 2
	got, err := repo.Find(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Written)

	finishedAt := time.Now()
	status.State = entity.RunCompleted
	status.FinishedAt = &finishedAt
	require.NoError(t, repo.Save(ctx, status))

	got, err = repo.Find(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RunCompleted, got.State)
	assert.Equal(t, 2, got.Written)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, finishedAt.Equal(*got.FinishedAt))
}
