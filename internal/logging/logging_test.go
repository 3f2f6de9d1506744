package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages written: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") {
		t.Errorf("expected warn line, got %q", out)
	}
}

func TestWithComponentSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelInfo)
	root.SetOutput(&buf)

	child := root.With("texture")
	child.Info("synthesized %s", "earth")

	root.SetLevel(LevelError)
	child.Info("dropped")

	out := buf.String()
	if !strings.Contains(out, "texture: synthesized earth") {
		t.Errorf("expected component prefix, got %q", out)
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("child should follow parent level, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(LevelError) {
		t.Error("discard logger should not enable any level")
	}
	l.Error("nothing")
}
