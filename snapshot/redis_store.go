package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardroom/betting"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps snapshots in Redis under a per-table key. A zero ttl
// keeps them forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func snapshotKey(tableID string) string {
	return "betting:snapshot:" + tableID
}

func (s *redisStore) Save(ctx context.Context, snap *betting.TableSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey(snap.TableID), payload, s.ttl).Err()
}

func (s *redisStore) Load(ctx context.Context, tableID string) (*betting.TableSnapshot, bool, error) {
	payload, err := s.client.Get(ctx, snapshotKey(tableID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap betting.TableSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, true, nil
}

func (s *redisStore) Delete(ctx context.Context, tableID string) error {
	return s.client.Del(ctx, snapshotKey(tableID)).Err()
}
