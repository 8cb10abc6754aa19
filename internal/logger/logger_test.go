package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestSetLevel(t *testing.T) {
	buf := capture(t)

	SetLevel("warn")
	LogPipelineEvent(context.Background(), "s1", "progress", "PL1")
	LogPipelineEvent(context.Background(), "s1", "blocked", "PL1")

	entries := lines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry at warn level, got %d", len(entries))
	}
	if entries[0]["event"] != "blocked" {
		t.Errorf("unexpected entry %v", entries[0])
	}
	if _, ok := entries[0]["timestamp"]; !ok {
		t.Error("expected timestamp key")
	}
}

func TestWithContext_RequestID(t *testing.T) {
	buf := capture(t)

	var ctx context.Context
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	LogAnalyze(ctx, "s1", "", 0, time.Millisecond, errors.New("bad url"))

	entries := lines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["request_id"] == nil || entries[0]["request_id"] == "" {
		t.Errorf("expected request_id in %v", entries[0])
	}
	if entries[0]["level"] != "WARN" {
		t.Errorf("expected WARN level, got %v", entries[0]["level"])
	}
}
