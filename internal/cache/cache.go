package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"go-task-api/internal/model"
)

const listKeyPrefix = "tasks:list:"

// NewClient creates a Redis client and performs a health check.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// TaskListCache memoizes task listing responses in Redis. It is
// best-effort: any Redis failure is logged and treated as a miss so
// the request still completes against the database.
type TaskListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTaskListCache(client *redis.Client, ttl time.Duration) *TaskListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TaskListCache{client: client, ttl: ttl}
}

// ListKey builds a deterministic cache key from the owner and the full
// criteria value, so identical listings hit the same entry.
func ListKey(ownerID string, c model.TaskCriteria) string {
	return fmt.Sprintf("%s%s:status=%s&priority=%s&q=%s&page=%d&limit=%d&sort=%s:%s",
		listKeyPrefix, ownerID, c.Status, c.Priority, c.Search, c.Page, c.Limit, c.SortBy, c.SortDir)
}

func (c *TaskListCache) Get(ctx context.Context, key string) (*model.TaskPage, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var page model.TaskPage
	if err := json.Unmarshal(raw, &page); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &page, true
}

func (c *TaskListCache) Set(ctx context.Context, key string, page *model.TaskPage) {
	if page == nil {
		return
	}

	raw, err := json.Marshal(page)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// Flush drops every cached listing, for all owners. Writes are rare
// enough relative to reads that the coarse reset keeps correctness
// without per-owner key bookkeeping.
func (c *TaskListCache) Flush(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, listKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("cache flush scan failed", "error", err)
	}
}
