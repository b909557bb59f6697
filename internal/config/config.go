// 包 config：运行配置，来源优先级为 命令行 > 环境变量（含 .env）> 默认值
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrHelp：用户请求帮助，调用方打印用法后以 0 退出
var ErrHelp = flag.ErrHelp

type Config struct {
	Input     string
	Output    string
	Delimiter string
	Verbose   bool

	PGSync          bool
	RedisSync       bool
	RedisKey        string
	MetricsTextfile string
	SinkTimeout     time.Duration
}

func Default() Config {
	return Config{
		Output:      "./",
		Delimiter:   "/",
		RedisKey:    "region:names",
		SinkTimeout: 30 * time.Second,
	}
}

// FromEnv：在默认值之上叠加环境变量；无法解析的值忽略并保留默认
func FromEnv(getenv func(string) string) Config {
	c := Default()
	if v := getenv("REGION_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := getenv("REGION_DELIMITER"); v != "" {
		c.Delimiter = v
	}
	c.Verbose = envBool(getenv("REGION_VERBOSE"), c.Verbose)
	c.PGSync = envBool(getenv("REGION_PG_SYNC"), c.PGSync)
	c.RedisSync = envBool(getenv("REGION_REDIS_SYNC"), c.RedisSync)
	if v := getenv("REGION_REDIS_KEY"); v != "" {
		c.RedisKey = v
	}
	c.MetricsTextfile = getenv("METRICS_TEXTFILE")
	if v := getenv("REGION_SINK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.SinkTimeout = d
		}
	}
	return c
}

func envBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// 文档注释：解析命令行参数到 cfg
// 背景：标准 flag 在首个位置参数处停止解析，这里循环续解析，使 "<file> -o out" 与 "-o out <file>" 等价。
// 异常：未知参数、缺少或重复的输入文件返回 error；-h/--help 返回 ErrHelp。
func ParseArgs(args []string, cfg *Config, usage io.Writer) error {
	fs := flag.NewFlagSet("region-names", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() { PrintUsage(usage) }

	fs.StringVar(&cfg.Output, "output", cfg.Output, "Write to <filename> or into <dir>/_<input>")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Same as --output")
	fs.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "Join region names with delimiter")
	fs.StringVar(&cfg.Delimiter, "d", cfg.Delimiter, "Same as --delimiter")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Use verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	switch len(positional) {
	case 0:
		return errors.New("missing input file")
	case 1:
		cfg.Input = positional[0]
	default:
		return fmt.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	return nil
}

// PrintUsage：打印用法与参数说明
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  region-names [flags] <file>

Flags:
  -o, --output <path>     Output file, or directory to write _<file> into (default "./")
  -d, --delimiter <str>   Join region names with delimiter (default "/")
  -v, --verbose           Use verbose output
  -h, --help              Show this help

Environment:
  REGION_OUTPUT, REGION_DELIMITER, REGION_VERBOSE   defaults for the flags above
  REGION_PG_SYNC=true      upsert results into PostgreSQL (PG_HOST, PG_PORT, PG_USER, PG_PASSWORD, PG_DB)
  REGION_REDIS_SYNC=true   write results into a Redis hash (REDIS_HOST, REDIS_PORT, REDIS_PASS, REDIS_DB)
  REGION_REDIS_KEY         Redis hash key (default "region:names")
  METRICS_TEXTFILE         write run counters in Prometheus text format to this path
  LOG_LEVEL, LOG_FORMAT    structured log level (debug|info|warn|error) and format (text|json)
`)
}
