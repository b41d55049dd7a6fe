package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelDebug)

	l.Info("processed chunk", F("index", 3), F("path", "/tmp/x.3"))

	out := buf.String()
	if !strings.Contains(out, "[INFO] processed chunk index=3 path=/tmp/x.3") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestDefaultLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	if buf.Len() != 0 {
		t.Errorf("messages below min level were written: %q", buf.String())
	}

	l.Warn("warn")
	l.Error("error")
	out := buf.String()
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("missing warn/error output: %q", out)
	}
}

func TestDefaultLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, LevelInfo)
	l := base.With(F("run_id", "abc"))

	l.Info("start", F("chunk_size", 2048))
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "[INFO] start run_id=abc chunk_size=2048") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if strings.Contains(lines[1], "run_id") {
		t.Errorf("With() leaked fields into the parent logger: %q", lines[1])
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Debug("x")
	l.Info("x", F("k", "v"))
	l.Warn("x")
	l.Error("x")
}
