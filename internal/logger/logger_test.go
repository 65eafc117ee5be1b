package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{" Debug ", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"something", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitAndL(t *testing.T) {
	Init("info", false)
	if L() == nil {
		t.Fatalf("L() returned nil")
	}
	if L().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", L().GetLevel())
	}

	Init("debug", true)
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", L().GetLevel())
	}
}

// Ensure L() initializes the logger lazily when Init was never called.
func TestLoggerAccessor_LazyInit(t *testing.T) {
	ready.Store(false)
	base = zerolog.Logger{}
	lg := L()
	if lg == nil {
		t.Fatalf("logger is nil")
	}
	if !ready.Load() || lg.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("logger not initialized, level=%v", lg.GetLevel())
	}
}

func TestFor_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	t.Cleanup(func() { Init("info", false) })

	lg := For("loader")
	lg.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["component"] != "loader" || entry["service"] != "p2pulse" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
