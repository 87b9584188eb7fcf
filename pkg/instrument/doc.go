// Package instrument wraps asynchronous document operations and live-query
// subscriptions with a structured begin/end/error logging envelope.
//
// Every instrumented call gets a random correlation identifier and a start
// timestamp. The envelope emits an informational "Initiated" log before the
// operation runs, then either a "Success" log with the elapsed duration or a
// "Failed" log with the full error context, and always returns the
// operation's result and error unchanged. The adapter observes failures, it
// never swallows or converts them.
//
// Call is the per-operation entry point:
//
//	task, err := instrument.Call(ctx, log, instrument.Descriptor{
//	    Operation: "Add Doc",
//	    Payload:   input,
//	    Tags:      map[string]any{"collection": "tasks"},
//	}, func(ctx context.Context) (Task, error) {
//	    return store.Insert(ctx, input)
//	})
//
// A Registry holds descriptor derivers keyed by operation, replacing
// reflection-based interception of a whole client with an explicit table that
// is consulted before a call is wrapped.
//
// Subscribe applies the same idea to long-lived live queries, which call back
// repeatedly instead of resolving once: one "Listener Initiated" log when the
// subscription is established, one "Data Received" log per delivered batch,
// one "Listener Error" log per observed error, and one "Listener
// Unsubscribed" log when the returned cancel handle is invoked.
//
// Attribute values attached to the envelope pass through
// sanitizer.Attributes, so nil tags are dropped and nested objects are
// serialized to text before emission.
package instrument
