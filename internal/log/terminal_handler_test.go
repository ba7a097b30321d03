package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "hop finished", 0)
	r.AddAttrs(slog.String("chain", "hg19_to_GRCh37.chain"), slog.Int("unmapped", 3))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"10:30:45.123", "INF", "hop finished", "chain=", "hg19_to_GRCh37.chain", "unmapped=", "3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output: %s", want, output)
		}
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			logger.Log(context.Background(), tt.level, "msg")
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("expected %s in output: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestTerminalHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil)).With("run", "abc").WithGroup("hop")
	logger.Info("started", "index", 1)

	output := buf.String()
	if !strings.Contains(output, "run=") || !strings.Contains(output, "abc") {
		t.Errorf("expected run attr: %s", output)
	}
	if !strings.Contains(output, "hop.index=") {
		t.Errorf("expected grouped key: %s", output)
	}
}

func TestTerminalHandler_QuotesSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil))
	logger.Info("tool output", "line", "Reading liftover chains")

	if !strings.Contains(buf.String(), `"Reading liftover chains"`) {
		t.Errorf("expected quoted value: %s", buf.String())
	}
}
