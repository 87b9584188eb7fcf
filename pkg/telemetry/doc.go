// Package telemetry ships structured log records to a remote OpenSearch
// backend.
//
// Handler implements slog.Handler: each record is converted to a flat row
// (timestamp, level, message, service, environment, host, attributes) and
// placed on a bounded in-memory queue. A background goroutine drains the
// queue and writes batches to the OpenSearch bulk API, either when the
// batch fills or on a flush-interval tick. When the queue is full new rows
// are dropped rather than blocking the caller; telemetry must never stall
// the instrumented application.
//
// The handler owns all buffering and batching. Instrumentation code emits
// single records through the ordinary slog API and stays unaware of the
// transport:
//
//	handler, err := telemetry.New(ctx, cfg)
//	if err != nil {
//	    // fall back to local-only logging
//	}
//	defer handler.Close()
//
//	log := slog.New(handler)
//	log.Info("Add Doc - Initiated", logger.CallID(id))
//
// Configuration is environment-driven: service name, environment tag, index
// name, flush interval, batch size, queue size and minimum level.
package telemetry
