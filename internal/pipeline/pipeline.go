// 包 pipeline：解析 -> 拼接 -> 写出 -> 可选下游同步，顺序执行
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"region-names/internal/config"
	"region-names/internal/logger"
	"region-names/internal/metrics"
	"region-names/internal/output"
	"region-names/internal/region"
	"region-names/internal/store"
	"time"
)

// Sink：文件写出之后的下游同步目标
type Sink interface {
	Name() string
	Sync(ctx context.Context, entries []store.Entry) (int, error)
}

// Summary：各阶段的本地计数，由调用方负责展示
type Summary struct {
	LinesRead int
	Retained  int
	Invalid   int
	Processed int
	Output    string
	Synced    map[string]int
}

// Options：Stdout 接收操作员可读的进度文本；为 nil 时丢弃
type Options struct {
	Stdout io.Writer
	Sinks  []Sink
}

// 文档注释：执行一次完整转换
// 背景：全部在内存中完成，区划集合解析后只读；祖先查询走前缀索引，结果与线性扫描一致。
// 异常：输入打开/读取、输出目录创建、文件写入、下游同步失败均直接返回 error，不重试；
// 返回的 Summary 保留失败前已完成阶段的计数。
func Run(ctx context.Context, cfg config.Config, opts Options) (Summary, error) {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	var sum Summary
	l := logger.L()

	f, err := os.Open(cfg.Input)
	if err != nil {
		return sum, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	fmt.Fprintf(out, "Starting to read lines from %s\n", cfg.Input)
	start := time.Now()
	parsed, err := region.Parse(f)
	if err != nil {
		return sum, fmt.Errorf("read input %s: %w", cfg.Input, err)
	}
	metrics.ObserveStage("parse", start)
	for _, bad := range parsed.Invalid {
		fmt.Fprintln(out, bad.String())
	}
	sum.LinesRead, sum.Retained, sum.Invalid = parsed.LinesRead, parsed.Retained(), len(parsed.Invalid)
	metrics.LinesReadTotal.Add(float64(sum.LinesRead))
	metrics.LinesRetainedTotal.Add(float64(sum.Retained))
	metrics.LinesInvalidTotal.Add(float64(sum.Invalid))
	fmt.Fprintf(out, "Read: %d lines, Effective: %d lines\n", sum.LinesRead, sum.Retained)
	l.Info("parse_ok", "read", sum.LinesRead, "retained", sum.Retained, "invalid", sum.Invalid)

	fmt.Fprintln(out, "Starting to process...")
	start = time.Now()
	c := &region.Composer{Delimiter: cfg.Delimiter, Resolver: region.NewIndex(parsed.Regions)}
	if cfg.Verbose {
		c.Progress = func(pos int, rec region.Record) {
			fmt.Fprintf(out, "%d => %s : %s\n", pos, rec.Code, rec.Name)
		}
	}
	recs := c.Compose(parsed.Regions)
	metrics.ObserveStage("compose", start)
	sum.Processed = len(recs)
	metrics.RecordsProcessedTotal.Add(float64(sum.Processed))
	fmt.Fprintf(out, "Processed: %d lines\n", sum.Processed)

	tg, err := output.Resolve(cfg.Output, cfg.Input)
	if err != nil {
		return sum, err
	}
	if cfg.Verbose {
		fmt.Fprintf(out, "Output dir: %s\n", tg.Dir)
		fmt.Fprintf(out, "Output file: %s\n", tg.File)
	}
	fmt.Fprintf(out, "Starting to write to %s\n", tg.File)
	start = time.Now()
	if err := tg.Write(recs); err != nil {
		return sum, err
	}
	metrics.ObserveStage("write", start)
	metrics.SinkRecordsTotal.WithLabelValues("file").Add(float64(len(recs)))
	sum.Output = tg.File
	l.Info("write_ok", "file", tg.File, "records", len(recs))

	if len(opts.Sinks) > 0 {
		entries := store.Entries(parsed.Regions, recs)
		sum.Synced = make(map[string]int, len(opts.Sinks))
		for _, s := range opts.Sinks {
			n, err := runSink(ctx, cfg.SinkTimeout, s, entries)
			sum.Synced[s.Name()] = n
			if err != nil {
				l.Error("sink_error", "sink", s.Name(), "synced", n, "err", err)
				return sum, fmt.Errorf("sync %s: %w", s.Name(), err)
			}
			l.Info("sink_ok", "sink", s.Name(), "synced", n)
		}
	}

	fmt.Fprintln(out, "Completed!")
	return sum, nil
}

func runSink(ctx context.Context, timeout time.Duration, s Sink, entries []store.Entry) (int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	n, err := s.Sync(ctx, entries)
	metrics.ObserveStage("sink_"+s.Name(), start)
	metrics.SinkRecordsTotal.WithLabelValues(s.Name()).Add(float64(n))
	return n, err
}
