package instrument_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpad/taskpad/pkg/instrument"
)

func TestSubscribeLifecycle(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	var deliver func([]string)
	var cancelled bool
	establish := func(_ context.Context, onData func([]string), _ func(error)) (func(), error) {
		deliver = onData
		return func() { cancelled = true }, nil
	}

	var received [][]string
	cancel, err := instrument.Subscribe(context.Background(), rec.Logger(), instrument.Descriptor{
		Operation: "Watch Docs",
		Tags:      map[string]any{"collection": "tasks"},
	}, establish, func(batch []string) {
		received = append(received, batch)
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, cancel)

	deliver([]string{"a", "b", "c"})
	cancel()

	// Forwarding reached the caller's callback.
	require.Len(t, received, 1)
	assert.Equal(t, []string{"a", "b", "c"}, received[0])
	assert.True(t, cancelled)

	logs := rec.Logs()
	require.Len(t, logs, 3)

	initiated, data, unsubscribed := logs[0], logs[1], logs[2]
	assert.Equal(t, "Watch Docs - Listener Initiated", initiated.msg)
	assert.Equal(t, instrument.TypeListener, initiated.attrs["log_type"])
	assert.Equal(t, instrument.StatusInitiated, initiated.attrs["status"])
	assert.Equal(t, "tasks", initiated.attrs["collection"])

	assert.Equal(t, "Watch Docs - Data Received", data.msg)
	assert.Equal(t, int64(3), data.attrs["count"])
	assert.Equal(t, instrument.StatusSuccess, data.attrs["status"])

	assert.Equal(t, "Watch Docs - Listener Unsubscribed", unsubscribed.msg)
	assert.Equal(t, instrument.StatusUnsubscribed, unsubscribed.attrs["status"])

	// All three share one listener id.
	require.NotEmpty(t, initiated.attrs["listener_id"])
	assert.Equal(t, initiated.attrs["listener_id"], data.attrs["listener_id"])
	assert.Equal(t, initiated.attrs["listener_id"], unsubscribed.attrs["listener_id"])
}

func TestSubscribeForwardsErrors(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	failure := instrument.WithCode(errors.New("cursor closed"), "cursor-closed")

	var fail func(error)
	establish := func(_ context.Context, _ func([]int), onError func(error)) (func(), error) {
		fail = onError
		return func() {}, nil
	}

	var forwarded error
	cancel, err := instrument.Subscribe(context.Background(), rec.Logger(), instrument.Descriptor{
		Operation: "Watch Docs",
	}, establish, nil, func(err error) {
		forwarded = err
	})
	require.NoError(t, err)
	defer cancel()

	fail(failure)

	require.Same(t, failure, forwarded)

	logs := rec.Logs()
	require.Len(t, logs, 2)
	errored := logs[1]
	assert.Equal(t, "Watch Docs - Listener Error", errored.msg)
	assert.Equal(t, slog.LevelError, errored.level)
	assert.Equal(t, "cursor closed", errored.attrs["error"])
	assert.Equal(t, "cursor-closed", errored.attrs["error_code"])
	assert.Equal(t, logs[0].attrs["listener_id"], errored.attrs["listener_id"])
}

func TestSubscribeWithoutErrorCallback(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	var fail func(error)
	establish := func(_ context.Context, _ func([]int), onError func(error)) (func(), error) {
		fail = onError
		return func() {}, nil
	}

	cancel, err := instrument.Subscribe[int](context.Background(), rec.Logger(), instrument.Descriptor{
		Operation: "Watch Docs",
	}, establish, nil, nil)
	require.NoError(t, err)
	defer cancel()

	// Observed and logged even when the caller supplied no error callback.
	fail(errors.New("boom"))

	logs := rec.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "Watch Docs - Listener Error", logs[1].msg)
}

func TestSubscribeEstablishFailure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	failure := errors.New("no connection")

	establish := func(context.Context, func([]int), func(error)) (func(), error) {
		return nil, failure
	}

	cancel, err := instrument.Subscribe[int](context.Background(), rec.Logger(), instrument.Descriptor{
		Operation: "Watch Docs",
	}, establish, nil, nil)
	require.Same(t, failure, err)
	assert.Nil(t, cancel)

	logs := rec.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "Watch Docs - Listener Initiated", logs[0].msg)
	assert.Equal(t, "Watch Docs - Listener Error", logs[1].msg)
}

func TestSubscribeCancelIsIdempotent(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	var cancels int
	establish := func(context.Context, func([]int), func(error)) (func(), error) {
		return func() { cancels++ }, nil
	}

	cancel, err := instrument.Subscribe[int](context.Background(), rec.Logger(), instrument.Descriptor{
		Operation: "Watch Docs",
	}, establish, nil, nil)
	require.NoError(t, err)

	cancel()
	cancel()
	cancel()

	assert.Equal(t, 1, cancels)

	logs := rec.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "Watch Docs - Listener Unsubscribed", logs[1].msg)
}
