package instrument

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/taskpad/taskpad/pkg/logger"
)

// CancelFunc tears down a live-query subscription. It is safe to call more
// than once; only the first call unsubscribes and logs.
type CancelFunc func()

// SubscribeFunc establishes the underlying live query, delivering batches to
// onData and failures to onError until the returned cancel function is
// invoked.
type SubscribeFunc[T any] func(ctx context.Context, onData func(batch []T), onError func(err error)) (cancel func(), err error)

// Subscribe establishes a live-query subscription through establish and
// wraps its callbacks with listener telemetry sharing one random listener
// id:
//
//   - one "Listener Initiated" log when the subscription is established;
//   - one "Data Received" log per delivered batch, carrying the batch size,
//     emitted before the batch is forwarded to onData;
//   - one "Listener Error" log per observed error, with the same error
//     detail extraction as Call, emitted before the error is forwarded to
//     onError (when set);
//   - one "Listener Unsubscribed" log when the returned cancel handle runs.
//
// Errors are observed, not recovered: there is no retry or resubscription.
// The caller owns the returned handle; an uncancelled subscription keeps its
// registration with the underlying query service alive.
func Subscribe[T any](ctx context.Context, log *slog.Logger, desc Descriptor, establish SubscribeFunc[T], onData func(batch []T), onError func(err error)) (CancelFunc, error) {
	if log == nil {
		log = slog.Default()
	}

	listenerID := uuid.New().String()

	base := []any{
		logger.ListenerID(listenerID),
		logger.Operation(desc.Operation),
		logger.LogType(TypeListener),
	}

	wrappedData := func(batch []T) {
		attrs := append(slices.Clone(base),
			logger.Count(len(batch)),
			logger.Status(StatusSuccess),
		)
		log.InfoContext(ctx, desc.Operation+" - Data Received", attrs...)
		if onData != nil {
			onData(batch)
		}
	}

	wrappedError := func(err error) {
		attrs := append(slices.Clone(base), logger.Status(StatusFailed))
		attrs = append(attrs, errorAttrs(err)...)
		log.ErrorContext(ctx, desc.Operation+" - Listener Error", attrs...)
		if onError != nil {
			onError(err)
		}
	}

	initiated := append(slices.Clone(base), tagAttrs(desc.Tags)...)
	initiated = append(initiated, logger.Status(StatusInitiated))
	log.InfoContext(ctx, desc.Operation+" - Listener Initiated", initiated...)

	cancel, err := establish(ctx, wrappedData, wrappedError)
	if err != nil {
		wrappedError(err)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if cancel != nil {
				cancel()
			}
			attrs := append(slices.Clone(base), logger.Status(StatusUnsubscribed))
			log.InfoContext(ctx, desc.Operation+" - Listener Unsubscribed", attrs...)
		})
	}, err
}
