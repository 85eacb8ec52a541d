package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Component: ComponentApp, Handler: slog.NewTextHandler(&buf, nil)})

	logger.Info("starting up")
	if got := buf.String(); !strings.Contains(got, "component=app") {
		t.Fatalf("missing component field: %s", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Component: ComponentApp, Handler: slog.NewTextHandler(&buf, nil)})

	child := logger.WithComponent(ComponentConsole)
	child.Warn("capture failed", FieldError, "no device")

	got := buf.String()
	if !strings.Contains(got, "component=console") {
		t.Fatalf("missing child component: %s", got)
	}
	if !strings.Contains(got, `error="no device"`) {
		t.Fatalf("missing error field: %s", got)
	}
	if child.Component() != ComponentConsole {
		t.Fatalf("Component() = %q, want %q", child.Component(), ComponentConsole)
	}
}
