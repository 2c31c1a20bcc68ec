package pixart

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLoggerSilentByDefault(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	for _, l := range []*slog.Logger{slog.New(discard{}), func() *slog.Logger { SetLogger(nil); return Logger() }()} {
		for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
			if l.Enabled(context.Background(), level) {
				t.Errorf("enabled at %v", level)
			}
		}
	}

	h := discard{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("k", 1)}).(discard); !ok {
		t.Error("WithAttrs left the discard handler")
	}
	if _, ok := h.WithGroup("g").(discard); !ok {
		t.Error("WithGroup left the discard handler")
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	Logger().Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "key=value") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRejectedEditIsLogged(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	doc := NewDocument(4, 4)
	if err := doc.DeleteLayer(0); err == nil {
		t.Fatal("DeleteLayer on the only layer succeeded")
	}
	if !strings.Contains(buf.String(), "last layer") {
		t.Errorf("no warning about the last layer: %q", buf.String())
	}
}

func TestDocumentLogValue(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)
	doc := NewDocument(3, 2)
	doc.AddLayer("")
	Logger().Info("state", "doc", doc)
	for _, want := range []string{"doc.width=3", "doc.height=2", "doc.layers=2", "doc.frames=1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %q lacks %q", buf.String(), want)
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}
