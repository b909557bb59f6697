package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "regions.txt")
	if err := os.WriteFile(in, []byte("110000 Beijing\n110100 BeijingCity\n110101 Dongcheng District\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	prom := filepath.Join(dir, "run.prom")

	var stdout, stderr bytes.Buffer
	code := run([]string{in, "-o", outDir, "-d", "|"}, &stdout, &stderr, env(map[string]string{"METRICS_TEXTFILE": prom}))
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	b, err := os.ReadFile(filepath.Join(outDir, "_regions.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(b), "\n"); got != 3 {
		t.Fatalf("lines = %d", got)
	}
	if !strings.Contains(string(b), "110101,Beijing|BeijingCity|Dongcheng\n") {
		t.Fatalf("output = %q", b)
	}
	if !strings.Contains(stdout.String(), "Completed!") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(prom); err != nil {
		t.Fatalf("metrics textfile: %v", err)
	}
}

func TestRun_EnvDelimiter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "r.txt")
	out := filepath.Join(dir, "r.csv")
	if err := os.WriteFile(in, []byte("110000 Beijing\n110100 City\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := run([]string{"--output", out, in}, &stdout, &stderr, env(map[string]string{"REGION_DELIMITER": "-"}))
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
	}
	b, _ := os.ReadFile(out)
	if string(b) != "110000,Beijing\n110100,Beijing-City\n" {
		t.Fatalf("output = %q", b)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr, env(nil)); code != 2 {
		t.Fatalf("missing input: exit = %d", code)
	}
	if code := run([]string{"-h"}, &stdout, &stderr, env(nil)); code != 0 {
		t.Fatalf("help: exit = %d", code)
	}
	missing := filepath.Join(t.TempDir(), "missing.txt")
	stderr.Reset()
	if code := run([]string{missing}, &stdout, &stderr, env(nil)); code != 1 {
		t.Fatalf("missing file: exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "open input") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRun_SinkUnavailable(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"postgres", map[string]string{"REGION_PG_SYNC": "true", "PG_HOST": "127.0.0.1", "PG_PORT": "1"}, "ping postgres"},
		{"redis", map[string]string{"REGION_REDIS_SYNC": "true", "REDIS_HOST": "127.0.0.1", "REDIS_PORT": "1"}, "ping redis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "r.txt")
			out := filepath.Join(dir, "r.csv")
			if err := os.WriteFile(in, []byte("110000 Beijing\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			tt.env["REGION_SINK_TIMEOUT"] = "3s"
			var stdout, stderr bytes.Buffer
			if code := run([]string{"-o", out, in}, &stdout, &stderr, env(tt.env)); code != 1 {
				t.Fatalf("exit = %d, stderr:\n%s", code, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tt.want)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Fatalf("no output is written when a sink cannot be reached, stat err = %v", err)
			}
		})
	}
}
