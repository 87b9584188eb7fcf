package instrument

import (
	"context"
	"log/slog"

	"github.com/taskpad/taskpad/pkg/async"
)

// Await applies the Call envelope to an already in-flight async.Future. The
// "Initiated" log is emitted immediately; the envelope then blocks on the
// future and emits the terminal log when it completes.
func Await[T any](ctx context.Context, log *slog.Logger, desc Descriptor, f *async.Future[T]) (T, error) {
	return Call(ctx, log, desc, func(context.Context) (T, error) {
		return f.Await()
	})
}
