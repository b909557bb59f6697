package store

import (
	"context"
	"fmt"
	"region-names/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Redis：把全称写入单个哈希，field 为代码，value 为全称
type Redis struct {
	rc        *redis.Client
	Key       string
	BatchSize int
}

func NewRedis(rc *redis.Client, key string) *Redis {
	return &Redis{rc: rc, Key: key, BatchSize: 1000}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) stagingKey() string { return r.Key + ":staging" }

// 文档注释：整表替换写入
// 背景：先写入暂存键再 RENAME，读端不会看到新旧混合的哈希；本次不存在的代码随旧哈希一起消失。
// 约束：entries 为空时直接删除目标键。
func (r *Redis) Sync(ctx context.Context, entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, r.rc.Del(ctx, r.Key).Err()
	}
	tmp := r.stagingKey()
	if err := r.rc.Del(ctx, tmp).Err(); err != nil {
		return 0, fmt.Errorf("reset staging key: %w", err)
	}
	count := 0
	for _, b := range batches(len(entries), r.BatchSize) {
		pipe := r.rc.Pipeline()
		for _, e := range entries[b[0]:b[1]] {
			pipe.HSet(ctx, tmp, e.Code, e.FullName)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return count, fmt.Errorf("hset batch: %w", err)
		}
		count += b[1] - b[0]
		logger.L().Debug("redis_sync_progress", "count", count)
	}
	if err := r.rc.Rename(ctx, tmp, r.Key).Err(); err != nil {
		return count, fmt.Errorf("rename %s: %w", tmp, err)
	}
	return count, nil
}
