package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
)

// Redis pushes each result as JSON onto a list.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis takes ownership of client.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (s *Redis) Kind() string { return "redis" }

func (s *Redis) Publish(ctx context.Context, r *event.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result %s: %w", r.EventID, err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push result %s: %w", r.EventID, err)
	}
	return nil
}

func (s *Redis) Close() error { return s.client.Close() }
