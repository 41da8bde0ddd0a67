package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"minilang/internal/logger"

	"github.com/charmbracelet/log"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer

	logger.InitWriter(&buf, false, true)
	log.Debug("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked at default level: %q", out)
	}
	if !strings.Contains(out, "MINILANG") || !strings.Contains(out, "key=value") {
		t.Errorf("expected prefixed warn record, got %q", out)
	}

	buf.Reset()
	logger.InitWriter(&buf, true, true)
	log.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug record in verbose mode, got %q", buf.String())
	}
}
