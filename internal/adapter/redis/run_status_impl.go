package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

const runStatusPrefix = "backup:run:"

// RunStatusRepoImpl provides a concrete implementation for the RunStatusRepository interface using Redis.
type RunStatusRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRunStatusRepo creates a new instance of RunStatusRepoImpl. Statuses expire after ttl.
func NewRunStatusRepo(client *redis.Client, ttl time.Duration) *RunStatusRepoImpl {
	return &RunStatusRepoImpl{client: client, ttl: ttl}
}

func (r *RunStatusRepoImpl) generateKey(runID string) string {
	return fmt.Sprintf("%s%s", runStatusPrefix, runID)
}

// Save stores the status as JSON, refreshing its expiry.
func (r *RunStatusRepoImpl) Save(ctx context.Context, status *entity.RunStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(status.RunID), data, r.ttl).Err()
}

// Find returns repository.ErrRunNotFound when the key is missing or expired.
func (r *RunStatusRepoImpl) Find(ctx context.Context, runID string) (*entity.RunStatus, error) {
	data, err := r.client.Get(ctx, r.generateKey(runID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrRunNotFound
		}
		return nil, err
	}

	var status entity.RunStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("corrupt run status %s: %w", runID, err)
	}
	return &status, nil
}

// Ping checks the Redis connection.
func (r *RunStatusRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
