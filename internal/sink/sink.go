// Package sink publishes processed event records to their destination.
package sink

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
)

// Publisher receives every successfully processed event.
type Publisher interface {
	Kind() string
	Publish(ctx context.Context, r *event.Result) error
	Close() error
}

// New selects a publisher by conf.Kind.
func New(conf config.OutputConf) (Publisher, error) {
	switch conf.Kind {
	case "", "none":
		return Nop{}, nil
	case "file":
		return NewFile(conf.Path)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
		return NewRedis(client, conf.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown output kind %q", conf.Kind)
	}
}

// Nop discards results.
type Nop struct{}

func (Nop) Kind() string                                 { return "none" }
func (Nop) Publish(context.Context, *event.Result) error { return nil }
func (Nop) Close() error                                 { return nil }
