package spritebatch

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLogger_DefaultIsSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger_NilRestoresSilent(t *testing.T) {
	captureLogs(t)
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) left a live logger")
	}
}

func TestLogger_AtlasMissWarns(t *testing.T) {
	buf := captureLogs(t)
	a := newTestAtlas(t, "a")
	a.Entry("nope")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "name=nope") {
		t.Errorf("log = %q, want WARN with name=nope", out)
	}
}
