package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogger captures structured logs for assertion in tests.
type TestLogger struct {
	mu      sync.RWMutex
	Entries []LogEntry
	Logger  *slog.Logger
}

// LogEntry represents a captured log entry.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a logger that captures every record at debug level
// and above.
func NewTestLogger(t *testing.T) *TestLogger {
	t.Helper()

	tl := &TestLogger{}
	tl.Logger = slog.New(&captureHandler{testLogger: tl})
	return tl
}

// captureHandler records entries instead of writing them.
type captureHandler struct {
	testLogger *TestLogger
	attrs      []slog.Attr // Accumulated attrs from WithAttrs calls
	group      string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	add := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		entry.Attrs[key] = a.Value.Any()
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(add)

	h.testLogger.mu.Lock()
	h.testLogger.Entries = append(h.testLogger.Entries, entry)
	h.testLogger.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &captureHandler{testLogger: h.testLogger, attrs: newAttrs, group: h.group}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}
	return &captureHandler{testLogger: h.testLogger, attrs: h.attrs, group: newGroup}
}

// CountLevel returns the count of entries at a specific level.
func (l *TestLogger) CountLevel(level slog.Level) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, e := range l.Entries {
		if e.Level == level {
			count++
		}
	}
	return count
}

// AssertContains asserts that at least one log entry contains the message.
func (l *TestLogger) AssertContains(t *testing.T, msg string) {
	t.Helper()

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.Entries {
		if strings.Contains(e.Message, msg) {
			return
		}
	}
	t.Errorf("Expected log to contain message %q, but it wasn't found", msg)
}

// AssertLevel asserts that there are exactly count entries at the given level.
func (l *TestLogger) AssertLevel(t *testing.T, level slog.Level, count int) {
	t.Helper()

	if actual := l.CountLevel(level); actual != count {
		t.Errorf("Expected %d entries at level %s, got %d", count, level.String(), actual)
	}
}

// AssertAttrValue asserts that at least one entry has the attribute with the given value.
func (l *TestLogger) AssertAttrValue(t *testing.T, key string, value any) {
	t.Helper()

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.Entries {
		if v, ok := e.Attrs[key]; ok && v == value {
			return
		}
	}
	t.Errorf("Expected at least one log entry with %s=%v", key, value)
}
