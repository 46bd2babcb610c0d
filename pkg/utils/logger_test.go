package utils

import (
	"strings"
	"testing"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var sb strings.Builder
	l := NewDefaultLogger(LevelWarn, &sb)

	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := sb.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("Expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("Expected warn and error lines, got %q", out)
	}
}

func TestDefaultLogger_Formatting(t *testing.T) {
	var sb strings.Builder
	l := NewDefaultLogger(LevelDebug, &sb)

	l.Info("read %d trees from %s", 4, "mesh.msh")
	if !strings.Contains(sb.String(), "read 4 trees from mesh.msh") {
		t.Errorf("Expected formatted message, got %q", sb.String())
	}
}

func TestDefaultLogger_WithField(t *testing.T) {
	var sb strings.Builder
	l := NewDefaultLogger(LevelInfo, &sb)

	l.WithField("tree", 2).Info("completed")
	if !strings.Contains(sb.String(), "tree=2") {
		t.Errorf("Expected field on log line, got %q", sb.String())
	}

	// The parent logger is not modified.
	sb.Reset()
	l.Info("plain")
	if strings.Contains(sb.String(), "tree=2") {
		t.Errorf("Expected parent logger without fields, got %q", sb.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNullLogger(t *testing.T) {
	var l Logger = &NullLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.WithField("k", "v") != l {
		t.Error("Expected NullLogger.WithField to return itself")
	}
}
