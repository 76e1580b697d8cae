package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"excer/internal/domain/stocks"
	"excer/pkg/errors"
)

const snapshotKey = "stocks"

// SnapshotRepository implements stocks.SnapshotRepository using Redis.
// The snapshot lives under a single fixed key with no TTL; each save
// replaces the previous value wholesale.
type SnapshotRepository struct {
	client *redis.Client
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{
		client: client,
	}
}

// Save replaces the published snapshot. The old key is deleted before the
// new value is written; readers hitting the gap see an empty store, which
// the API layer turns into an empty ok-shaped response.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *stocks.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrapf(errors.ErrPersistence, "failed to marshal snapshot: %v", err)
	}

	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		return errors.Wrapf(errors.ErrPersistence, "failed to delete previous snapshot: %v", err)
	}

	if err := r.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return errors.Wrapf(errors.ErrPersistence, "failed to save snapshot to redis: %v", err)
	}

	return nil
}

// Load returns the published snapshot, or nil when none has been written yet
func (r *SnapshotRepository) Load(ctx context.Context) (*stocks.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get snapshot from redis")
	}

	var snapshot stocks.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &snapshot, nil
}
