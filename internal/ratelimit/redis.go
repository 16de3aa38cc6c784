package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis — счётчик в Redis: INCR по ключу "ratelimit:<key>:<окно>" с EXPIRE.
// Общий для всех инстансов сервиса, переживает рестарты.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	windowID := r.now().Unix() / int64(r.window/time.Second)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowID)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// TTL с запасом в одно окно, чтобы ключ не протух до конца окна
	pipe.Expire(ctx, redisKey, r.window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: redis incr: %w", err)
	}
	return incr.Val() <= int64(r.limit), nil
}
