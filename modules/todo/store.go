package todo

import "context"

// Store is the document-database surface the service depends on. The
// instrumentation envelope wraps these calls without altering their
// request or response shapes.
type Store interface {
	// Insert stores a new task document and returns it.
	Insert(ctx context.Context, task Task) (Task, error)

	// FindByOwner returns every task belonging to the owner.
	FindByOwner(ctx context.Context, ownerID string) ([]Task, error)

	// Update applies a partial update to the owner's task and returns the
	// updated document. Returns ErrNotFound when no document matches.
	Update(ctx context.Context, ownerID, id string, upd TaskUpdate) (Task, error)

	// Delete removes the owner's task. Returns ErrNotFound when no
	// document matches.
	Delete(ctx context.Context, ownerID, id string) error

	// Watch establishes a live query over the owner's tasks, delivering
	// changed documents to onData and failures to onError until the
	// returned cancel function is invoked.
	Watch(ctx context.Context, ownerID string, onData func(batch []Task), onError func(err error)) (cancel func(), err error)
}
