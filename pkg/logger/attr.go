package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// CallID records the correlation identifier linking the initiated and
// terminal log entries of one instrumented call under the key "call_id".
func CallID(id string) slog.Attr {
	return slog.String("call_id", id)
}

// ListenerID records the correlation identifier of a live-query listener
// under the key "listener_id".
func ListenerID(id string) slog.Attr {
	return slog.String("listener_id", id)
}

// Operation records the instrumented operation name under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Status records the lifecycle status of an instrumented call under the
// key "status".
func Status(status string) slog.Attr {
	return slog.String("status", status)
}

// LogType records the fixed log-type marker under the key "log_type",
// letting a downstream log viewer separate operation telemetry from
// ordinary application logs.
func LogType(t string) slog.Attr {
	return slog.String("log_type", t)
}

// DurationMS records an elapsed duration in milliseconds under the key
// "duration_ms".
func DurationMS(d time.Duration) slog.Attr {
	return slog.Float64("duration_ms", float64(d)/float64(time.Millisecond))
}

// ErrorCode records a machine-readable error code under the key "error_code".
func ErrorCode(code string) slog.Attr {
	return slog.String("error_code", code)
}

// Payload records a serialized operation payload under the key "payload".
func Payload(text string) slog.Attr {
	return slog.String("payload", text)
}

// Count records an item count under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
