package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON log lines with a fixed set of base fields.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the given service name.
func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a new request correlation id.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) baseAttrs(action, requestID string) []slog.Attr {
	return []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
}

func appendFields(attrs []slog.Attr, fields map[string]interface{}) []slog.Attr {
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

// Info logs an informational message.
func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	attrs := appendFields(l.baseAttrs(action, requestID), fields)
	l.handler.LogAttrs(context.TODO(), slog.LevelInfo, message, attrs...)
}

// Debug logs a debug message.
func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	attrs := appendFields(l.baseAttrs(action, requestID), fields)
	l.handler.LogAttrs(context.TODO(), slog.LevelDebug, message, attrs...)
}

// Warn logs a non-fatal anomaly.
func (l *Logger) Warn(action, message, requestID string, fields map[string]interface{}) {
	attrs := appendFields(l.baseAttrs(action, requestID), fields)
	l.handler.LogAttrs(context.TODO(), slog.LevelWarn, message, attrs...)
}

// Error logs an error with a stack trace.
func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	attrs := l.baseAttrs(action, requestID)
	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}
	attrs = appendFields(attrs, fields)
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}
