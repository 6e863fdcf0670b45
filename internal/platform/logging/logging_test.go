package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"pomo/internal/platform/logging"
)

func TestNewFiltersBelowLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logging.New("info", &buf)
	log.Debug("hidden", "k", 1)
	log.Info("shown", "phase", "work")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "phase=work") || !strings.Contains(out, "pomo") {
		t.Fatalf("expected named info line with fields, got %s", out)
	}
}

func TestNewUnknownLevelDefaultsToWarn(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logging.New("verbose", &buf)
	log.Info("quiet")
	log.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("expected warn threshold, got %s", buf.String())
	}
}
