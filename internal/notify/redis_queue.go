package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultRedisKey is the list holding pending notification jobs.
const DefaultRedisKey = "portfolio:notifications"

// NewRedisClient connects to the Redis server described by url.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisQueue keeps jobs in a Redis list so they survive a restart.
type RedisQueue struct {
	client *redis.Client
	key    string
	worker *Worker
}

// NewRedisQueue creates a queue backed by the list at key.
func NewRedisQueue(client *redis.Client, key string, worker *Worker) *RedisQueue {
	return &RedisQueue{client: client, key: key, worker: worker}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}
	return nil
}

// Run consumes jobs until ctx is cancelled.
func (q *RedisQueue) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Str("key", q.key).Msg("redis queue pop failed")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		// BRPOP returns [key, value].
		q.deliver(ctx, res[1])
	}
}

// deliver sends a popped payload. The job is no longer in Redis, so it is
// finished even when ctx is already cancelled.
func (q *RedisQueue) deliver(ctx context.Context, payload string) {
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Error().Err(err).Msg("discarding malformed notification job")
		return
	}
	q.worker.Handle(context.WithoutCancel(ctx), job)
}
