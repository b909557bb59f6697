// 程序入口：读取区划表，拼接省/市/县全称后写出 "<code>,<全称>" 文件，可选同步到 PostgreSQL 与 Redis
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"region-names/internal/config"
	"region-names/internal/logger"
	"region-names/internal/metrics"
	"region-names/internal/pipeline"
	"region-names/internal/store"
	"region-names/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg := config.FromEnv(getenv)
	if err := config.ParseArgs(args, &cfg, stderr); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "region-names: %v\n\n", err)
		config.PrintUsage(stderr)
		return 2
	}

	lvl := logger.ParseLevel(getenv("LOG_LEVEL"))
	if cfg.Verbose && lvl > slog.LevelDebug {
		lvl = slog.LevelDebug
	}
	l := logger.SetupWith(stderr, lvl, getenv("LOG_FORMAT"))
	l.Debug("config_loaded", "input", cfg.Input, "output", cfg.Output, "delimiter", cfg.Delimiter,
		"pg_sync", cfg.PGSync, "redis_sync", cfg.RedisSync)

	sinks, closeSinks, err := openSinks(context.Background(), cfg, getenv, l)
	if err != nil {
		fmt.Fprintf(stderr, "region-names: %v\n", err)
		return 1
	}
	defer closeSinks()

	sum, err := pipeline.Run(context.Background(), cfg, pipeline.Options{Stdout: stdout, Sinks: sinks})
	if cfg.MetricsTextfile != "" {
		if e := metrics.WriteTextfile(cfg.MetricsTextfile); e != nil {
			l.Error("metrics_textfile_error", "path", cfg.MetricsTextfile, "err", e)
		}
	}
	if err != nil {
		l.Error("run_error", "err", err)
		fmt.Fprintf(stderr, "region-names: %v\n", err)
		return 1
	}
	l.Info("run_done", "read", sum.LinesRead, "retained", sum.Retained, "processed", sum.Processed, "output", sum.Output)
	return 0
}

// 文档注释：按配置打开下游同步目标
// 背景：与主入口一致，PostgreSQL 连接参数取自 PG_*，Redis 取自 REDIS_*；打开后先探活，失败即退出。
func openSinks(ctx context.Context, cfg config.Config, getenv func(string) string, l *slog.Logger) ([]pipeline.Sink, func(), error) {
	var sinks []pipeline.Sink
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.SinkTimeout)
	defer cancel()

	if cfg.PGSync {
		db, err := utils.OpenPostgresWith(getenv)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := db.PingContext(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		l.Info("db_ping_ok")
		sinks = append(sinks, store.AttachDB(db))
	}
	if cfg.RedisSync {
		rc := utils.OpenRedisWith(getenv)
		closers = append(closers, func() { _ = rc.Close() })
		if err := rc.Ping(ctx).Err(); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		l.Info("redis_ping_ok")
		sinks = append(sinks, store.NewRedis(rc, cfg.RedisKey))
	}
	return sinks, closeAll, nil
}
