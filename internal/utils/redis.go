// 包 utils：PostgreSQL / Redis 连接工具，统一环境变量读取
package utils

import (
	"region-names/internal/logger"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：使用地址与密码打开 Redis 客户端；地址为空返回 nil
func OpenRedis(addr, pass string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass})
}

// RedisOptions：从 REDIS_* 变量构造连接参数
// 约束：REDIS_DB 解析失败时回退到 0
func RedisOptions(getenv func(string) string) *redis.Options {
	host := getenv("REDIS_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	return &redis.Options{Addr: host + ":" + port, Password: getenv("REDIS_PASS"), DB: db}
}

func OpenRedisWith(getenv func(string) string) *redis.Client {
	opt := RedisOptions(getenv)
	logger.L().Debug("redis_env", "addr", opt.Addr, "db", opt.DB)
	return redis.NewClient(opt)
}
