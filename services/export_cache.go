package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"quizmaker/exporters"
	"quizmaker/models"

	"github.com/redis/go-redis/v9"
)

const DefaultExportCacheTTL = 2 * time.Hour

// ExportCache keeps rendered exports. Implementations swallow their own
// failures; a broken cache only costs a re-render.
type ExportCache interface {
	Get(ctx context.Context, key string) (*exporters.Result, bool)
	Set(ctx context.Context, key string, res *exporters.Result)
}

// exportCacheKey changes whenever the quiz is updated, so stale renders are
// never served.
func exportCacheKey(quiz *models.QuizAggregate, format string) string {
	return fmt.Sprintf("export:%s:%s:%d", quiz.Quiz.ID, strings.ToLower(format), quiz.Quiz.Version())
}

type NopExportCache struct{}

func (NopExportCache) Get(context.Context, string) (*exporters.Result, bool) { return nil, false }

func (NopExportCache) Set(context.Context, string, *exporters.Result) {}

type RedisExportCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisExportCache(client *redis.Client, ttl time.Duration) *RedisExportCache {
	if ttl <= 0 {
		ttl = DefaultExportCacheTTL
	}
	return &RedisExportCache{redis: client, ttl: ttl}
}

func (c *RedisExportCache) Get(ctx context.Context, key string) (*exporters.Result, bool) {
	data, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting export %s: %v", key, err)
		}
		return nil, false
	}

	var res exporters.Result
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		log.Printf("Failed to unmarshal cached export %s: %v", key, err)
		return nil, false
	}
	return &res, true
}

func (c *RedisExportCache) Set(ctx context.Context, key string, res *exporters.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Printf("Failed to marshal export %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to store export %s in Redis: %v", key, err)
	}
}
