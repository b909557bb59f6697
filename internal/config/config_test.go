package config

import (
	"errors"
	"io"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Output != "./" || c.Delimiter != "/" || c.Verbose {
		t.Fatalf("Default() = %+v", c)
	}
	if c.RedisKey != "region:names" || c.SinkTimeout != 30*time.Second {
		t.Fatalf("Default() sinks = %+v", c)
	}
}

func TestFromEnv(t *testing.T) {
	c := FromEnv(envMap(map[string]string{
		"REGION_OUTPUT":       "out",
		"REGION_DELIMITER":    "-",
		"REGION_VERBOSE":      "true",
		"REGION_PG_SYNC":      "1",
		"REGION_REDIS_SYNC":   "nope",
		"REGION_REDIS_KEY":    "k",
		"METRICS_TEXTFILE":    "/tmp/m.prom",
		"REGION_SINK_TIMEOUT": "5s",
	}))
	if c.Output != "out" || c.Delimiter != "-" || !c.Verbose || !c.PGSync {
		t.Fatalf("FromEnv = %+v", c)
	}
	if c.RedisSync {
		t.Fatalf("unparsable bool must keep default")
	}
	if c.RedisKey != "k" || c.MetricsTextfile != "/tmp/m.prom" || c.SinkTimeout != 5*time.Second {
		t.Fatalf("FromEnv sinks = %+v", c)
	}
}

func TestFromEnv_BadTimeout(t *testing.T) {
	c := FromEnv(envMap(map[string]string{"REGION_SINK_TIMEOUT": "-1s"}))
	if c.SinkTimeout != 30*time.Second {
		t.Fatalf("SinkTimeout = %v", c.SinkTimeout)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "defaults",
			args: []string{"in.txt"},
			want: Config{Input: "in.txt", Output: "./", Delimiter: "/"},
		},
		{
			name: "long flags before file",
			args: []string{"--output", "out.csv", "--delimiter=|", "--verbose", "in.txt"},
			want: Config{Input: "in.txt", Output: "out.csv", Delimiter: "|", Verbose: true},
		},
		{
			name: "short flags after file",
			args: []string{"in.txt", "-o", "dir", "-d", " ", "-v"},
			want: Config{Input: "in.txt", Output: "dir", Delimiter: " ", Verbose: true},
		},
		{
			name: "mixed",
			args: []string{"-d", ">", "in.txt", "-o", "x.csv"},
			want: Config{Input: "in.txt", Output: "x.csv", Delimiter: ">"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Output: "./", Delimiter: "/"}
			if err := ParseArgs(tt.args, &c, io.Discard); err != nil {
				t.Fatalf("ParseArgs: %v", err)
			}
			if c != tt.want {
				t.Fatalf("got %+v, want %+v", c, tt.want)
			}
		})
	}
}

func TestParseArgs_FlagsOverrideEnv(t *testing.T) {
	c := FromEnv(envMap(map[string]string{"REGION_DELIMITER": "-", "REGION_OUTPUT": "env.csv"}))
	if err := ParseArgs([]string{"-d", "+", "in.txt"}, &c, io.Discard); err != nil {
		t.Fatal(err)
	}
	if c.Delimiter != "+" || c.Output != "env.csv" {
		t.Fatalf("got %+v", c)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", nil},
		{"two inputs", []string{"a.txt", "b.txt"}},
		{"unknown flag", []string{"--nope", "a.txt"}},
		{"missing value", []string{"a.txt", "-o"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			if err := ParseArgs(tt.args, &c, io.Discard); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseArgs_Help(t *testing.T) {
	c := Default()
	err := ParseArgs([]string{"--help"}, &c, io.Discard)
	if !errors.Is(err, ErrHelp) {
		t.Fatalf("err = %v, want ErrHelp", err)
	}
}
