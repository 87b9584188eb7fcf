package instrument

import (
	"context"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/taskpad/taskpad/pkg/logger"
	"github.com/taskpad/taskpad/pkg/sanitizer"
)

// Lifecycle statuses attached to every envelope log entry.
const (
	StatusInitiated    = "initiated"
	StatusSuccess      = "success"
	StatusFailed       = "failed"
	StatusUnsubscribed = "unsubscribed"
)

// Log-type markers distinguishing envelope telemetry from ordinary
// application logs.
const (
	TypeOperation = "operation"
	TypeListener  = "listener"
)

// Call runs fn inside the instrumentation envelope. It emits an "Initiated"
// log before invoking fn and a "Success" or "Failed" log after it returns,
// all three sharing one random correlation id. The result and error of fn
// are returned unchanged; in particular the original error value is
// propagated as-is after the failure log has been emitted.
func Call[T any](ctx context.Context, log *slog.Logger, desc Descriptor, fn func(context.Context) (T, error)) (T, error) {
	if log == nil {
		log = slog.Default()
	}

	callID := uuid.New().String()
	start := time.Now()

	base := []any{
		logger.CallID(callID),
		logger.Operation(desc.Operation),
		logger.LogType(TypeOperation),
	}

	initiated := append(slices.Clone(base), tagAttrs(desc.Tags)...)
	if !isNil(desc.Payload) {
		initiated = append(initiated, logger.Payload(sanitizer.Stringify(desc.Payload)))
	}
	initiated = append(initiated, logger.Status(StatusInitiated))
	log.InfoContext(ctx, desc.Operation+" - Initiated", initiated...)

	result, err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		failed := append(slices.Clone(base),
			logger.DurationMS(elapsed),
			logger.Status(StatusFailed),
		)
		failed = append(failed, errorAttrs(err)...)
		if !isNil(desc.Payload) {
			failed = append(failed, logger.Payload(sanitizer.Stringify(desc.Payload)))
		}
		log.ErrorContext(ctx, desc.Operation+" - Failed", failed...)
		return result, err
	}

	success := append(slices.Clone(base),
		logger.DurationMS(elapsed),
		logger.Status(StatusSuccess),
	)
	log.InfoContext(ctx, desc.Operation+" - Success", success...)
	return result, nil
}

// tagAttrs sanitizes descriptor tags and converts them to slog attributes
// in deterministic key order.
func tagAttrs(tags map[string]any) []any {
	clean := sanitizer.Attributes(tags)
	attrs := make([]any, 0, len(clean))
	for _, k := range slices.Sorted(maps.Keys(clean)) {
		attrs = append(attrs, slog.Any(k, clean[k]))
	}
	return attrs
}

// isNil reports whether the payload is absent, covering typed nils hidden
// inside the interface value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// errorAttrs converts the typed error context into failure-log attributes.
// Extension fields are prefixed with "error_" and sanitized so nested
// objects arrive as text.
func errorAttrs(err error) []any {
	ec := ContextFromError(err)

	attrs := []any{
		slog.String("error", ec.Message),
		logger.ErrorCode(ec.Code),
	}
	if ec.Stack != "" {
		attrs = append(attrs, slog.String("stack", ec.Stack))
	}
	if len(ec.Fields) > 0 {
		prefixed := make(map[string]any, len(ec.Fields))
		for k, v := range ec.Fields {
			prefixed["error_"+k] = v
		}
		clean := sanitizer.Attributes(prefixed)
		for _, k := range slices.Sorted(maps.Keys(clean)) {
			attrs = append(attrs, slog.Any(k, clean[k]))
		}
	}
	return attrs
}
