package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevelParsing(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" error ": zerolog.InfoLevel, // whitespace is not trimmed
	}
	for in, want := range cases {
		cleanup, err := Init("", in)
		if err != nil {
			t.Fatalf("Init(%q) returned error: %v", in, err)
		}
		cleanup()
		if got := zerolog.GlobalLevel(); got != want {
			t.Errorf("Init(%q): global level = %v, want %v", in, got, want)
		}
	}
}

func TestInitWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "stevedore.log")
	cleanup, err := Init(path, "info")
	if err != nil {
		t.Fatalf("Init with log file failed: %v", err)
	}
	Get().Info().Str("probe", "hello").Msg("file sink test")
	cleanup()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(b), "file sink test") {
		t.Fatalf("log file missing expected entry, got: %s", b)
	}
}

func TestInitFilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stevedore.log")
	cleanup, err := Init(path, "info")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cleanup()

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if fi.Mode().Perm()&0o004 != 0 {
		t.Fatalf("log file should not be world-readable, mode=%v", fi.Mode())
	}
}
