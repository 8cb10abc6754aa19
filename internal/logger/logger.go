package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

var (
	Logger *slog.Logger
	level  = new(slog.LevelVar)
)

func init() {
	SetOutput(os.Stdout)
}

// SetOutput rebuilds the JSON handler on w and installs it as the default.
func SetOutput(w io.Writer) {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	Logger = slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(Logger)
}

// LogLevel represents different log levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// SetLevel changes the minimum level. Unknown names fall back to info.
func SetLevel(name string) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(name))) {
	case LevelDebug:
		level.Set(slog.LevelDebug)
	case LevelWarn:
		level.Set(slog.LevelWarn)
	case LevelError:
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// WithContext adds request context information to logs
func WithContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Logger
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return Logger.With("request_id", reqID)
	}
	return Logger
}

// LogAnalyze records one URL analysis.
func LogAnalyze(ctx context.Context, sessionID, playlistID string, videoCount int, duration time.Duration, err error) {
	logger := WithContext(ctx).With(
		"service", "synthesizer",
		"session_id", sessionID,
		"duration_ms", duration.Milliseconds(),
	)

	if err != nil {
		logger.Warn("Playlist analysis rejected",
			"error", err.Error(),
		)
		return
	}
	logger.Info("Playlist analyzed",
		"playlist_id", playlistID,
		"video_count", videoCount,
	)
}

// LogPipelineEvent records a pipeline notification. Progress and status
// events are debug level; run outcomes are info.
func LogPipelineEvent(ctx context.Context, sessionID, eventType, playlistID string, attrs ...any) {
	logger := WithContext(ctx).With(
		"service", "pipeline",
		"session_id", sessionID,
		"event", eventType,
		"playlist_id", playlistID,
	)

	switch eventType {
	case "progress", "status":
		logger.Debug("Pipeline event", attrs...)
	case "blocked":
		logger.Warn("Pipeline run blocked", attrs...)
	default:
		logger.Info("Pipeline event", attrs...)
	}
}

// LogHTTPRequest records a served request.
func LogHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	logger := WithContext(ctx).With(
		"service", "http",
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
	)

	if status >= 500 {
		logger.Error("HTTP request failed")
	} else {
		logger.Info("HTTP request completed")
	}
}
