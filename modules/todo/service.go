package todo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskpad/taskpad/pkg/instrument"
	"github.com/taskpad/taskpad/pkg/sanitizer"
)

// Operation keys used in the instrumentation registry.
const (
	opAdd    = "tasks.add"
	opList   = "tasks.list"
	opUpdate = "tasks.update"
	opRemove = "tasks.remove"
	opWatch  = "tasks.watch"
)

const maxTitleLength = 500

// Service exposes the to-do operations, wrapping every store call in the
// instrumentation envelope. Descriptors are derived through an explicit
// registry consulted before each call; an unregistered key leaves the call
// unwrapped.
type Service struct {
	store      Store
	log        *slog.Logger
	registry   *instrument.Registry
	cleanTitle func(string) string
}

// NewService creates a Service over the given store. The logger receives
// the telemetry envelope of every operation; pass a logger built by
// pkg/logger with the telemetry handler wired in.
func NewService(store Store, log *slog.Logger) *Service {
	s := &Service{
		store:    store,
		log:      log,
		registry: instrument.NewRegistry(),
		cleanTitle: sanitizer.Compose(
			sanitizer.SingleLine,
			sanitizer.Trim,
			func(t string) string { return sanitizer.MaxLength(t, maxTitleLength) },
		),
	}
	s.registerOperations()
	return s
}

// registerOperations fills the descriptor table. Each deriver turns raw
// call arguments into the operation name and context logged by the
// envelope, such as the collection name or the document path.
func (s *Service) registerOperations() {
	s.registry.Register(opAdd, func(args ...any) instrument.Descriptor {
		task := args[0].(Task)
		return instrument.Descriptor{
			Operation: "Add Doc",
			Payload:   task,
			Tags: map[string]any{
				"collection": CollectionName,
				"path":       task.Path(),
				"owner_id":   task.OwnerID,
			},
		}
	})

	s.registry.Register(opList, func(args ...any) instrument.Descriptor {
		return instrument.Descriptor{
			Operation: "Get Docs",
			Tags: map[string]any{
				"collection": CollectionName,
				"owner_id":   args[0],
			},
		}
	})

	s.registry.Register(opUpdate, func(args ...any) instrument.Descriptor {
		ownerID, id := args[0].(string), args[1].(string)
		return instrument.Descriptor{
			Operation: "Update Doc",
			Payload:   args[2],
			Tags: map[string]any{
				"collection": CollectionName,
				"path":       CollectionName + "/" + id,
				"owner_id":   ownerID,
			},
		}
	})

	s.registry.Register(opRemove, func(args ...any) instrument.Descriptor {
		ownerID, id := args[0].(string), args[1].(string)
		return instrument.Descriptor{
			Operation: "Delete Doc",
			Tags: map[string]any{
				"collection": CollectionName,
				"path":       CollectionName + "/" + id,
				"owner_id":   ownerID,
			},
		}
	})

	s.registry.Register(opWatch, func(args ...any) instrument.Descriptor {
		return instrument.Descriptor{
			Operation: "Watch Docs",
			Tags: map[string]any{
				"collection": CollectionName,
				"owner_id":   args[0],
			},
		}
	})
}

// Add creates a task for the owner. The title is sanitized before
// validation; an empty result is rejected without touching the store.
func (s *Service) Add(ctx context.Context, ownerID, title, notes string) (Task, error) {
	title = s.cleanTitle(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	now := time.Now().UTC()
	task := Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	desc, ok := s.registry.Describe(opAdd, task)
	if !ok {
		return s.store.Insert(ctx, task)
	}
	return instrument.Call(ctx, s.log, desc, func(ctx context.Context) (Task, error) {
		return s.store.Insert(ctx, task)
	})
}

// List returns the owner's tasks.
func (s *Service) List(ctx context.Context, ownerID string) ([]Task, error) {
	desc, ok := s.registry.Describe(opList, ownerID)
	if !ok {
		return s.store.FindByOwner(ctx, ownerID)
	}
	return instrument.Call(ctx, s.log, desc, func(ctx context.Context) ([]Task, error) {
		return s.store.FindByOwner(ctx, ownerID)
	})
}

// Update applies a partial update to the owner's task. A title update is
// sanitized and validated the same way as in Add.
func (s *Service) Update(ctx context.Context, ownerID, id string, upd TaskUpdate) (Task, error) {
	if upd.Title != nil {
		clean := s.cleanTitle(*upd.Title)
		if clean == "" {
			return Task{}, ErrEmptyTitle
		}
		upd.Title = &clean
	}

	desc, ok := s.registry.Describe(opUpdate, ownerID, id, upd)
	if !ok {
		return s.store.Update(ctx, ownerID, id, upd)
	}
	return instrument.Call(ctx, s.log, desc, func(ctx context.Context) (Task, error) {
		return s.store.Update(ctx, ownerID, id, upd)
	})
}

// SetDone marks the owner's task done or not done.
func (s *Service) SetDone(ctx context.Context, ownerID, id string, done bool) (Task, error) {
	return s.Update(ctx, ownerID, id, TaskUpdate{Done: &done})
}

// Remove deletes the owner's task.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	desc, ok := s.registry.Describe(opRemove, ownerID, id)
	if !ok {
		return s.store.Delete(ctx, ownerID, id)
	}
	_, err := instrument.Call(ctx, s.log, desc, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Delete(ctx, ownerID, id)
	})
	return err
}

// WatchOwner establishes a live query over the owner's tasks with listener
// telemetry. The caller owns the returned cancel handle and must invoke it
// to release the underlying registration.
func (s *Service) WatchOwner(ctx context.Context, ownerID string, onData func(batch []Task), onError func(err error)) (instrument.CancelFunc, error) {
	establish := func(ctx context.Context, onData func([]Task), onError func(error)) (func(), error) {
		return s.store.Watch(ctx, ownerID, onData, onError)
	}

	desc, ok := s.registry.Describe(opWatch, ownerID)
	if !ok {
		return establish(ctx, onData, onError)
	}
	return instrument.Subscribe(ctx, s.log, desc, establish, onData, onError)
}
