package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden")
	logger.Noticef("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered at notice level, got %q", out)
	}
	if !strings.Contains(out, "shown 1") {
		t.Errorf("Expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("tile %d", 3)
	if !strings.Contains(buf.String(), "tile 3") {
		t.Errorf("Expected debug message at debug level, got %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	SetSink(&first)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	SetLevel(Warning)
	SetSink(&second)

	New("test").Notice("filtered")
	if second.Len() != 0 {
		t.Errorf("Expected level to survive a sink change, got %q", second.String())
	}
}

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		veryVerbose bool
		expected    Level
	}{
		{"Default", false, false, Notice},
		{"Verbose", true, false, Info},
		{"Very verbose", false, true, Debug},
		{"Both", true, true, Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerbosityLevel(tt.verbose, tt.veryVerbose); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSetLevel_UnknownFallsBackToNotice(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	SetLevel(Level(42))
	logger := New("test")
	logger.Info("hidden")
	logger.Notice("shown")

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("Expected notice filtering for an unknown level, got %q", out)
	}
}
