package syntax

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithLoggerReceivesRecoveryDebugLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A lone unexpected token forces the parser's recovery path, which
	// logs at Debug via logRecovery.
	if _, err := Parse(context.Background(), "@", Lua54(), WithLogger(logger)); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "skipping unexpected token") {
		t.Errorf("expected a recovery debug log, got:\n%s", out)
	}
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("expected the log to be at Debug level, got:\n%s", out)
	}
}

func TestWithLoggerDefaultsToSlogDefaultWhenUnset(t *testing.T) {
	// Parsing clean input that never hits a recovery path should not
	// panic even without WithLogger, since Parser falls back to
	// slog.Default().
	node := mustParse(t, "local x = 1", Lua54())
	if node.Erroneous() {
		t.Error("clean input should not be erroneous")
	}
}
