package todo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store on a MongoDB collection. Live queries are
// backed by change streams, which require a replica set or Atlas
// deployment.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over the tasks collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

func (s *MongoStore) Insert(ctx context.Context, task Task) (Task, error) {
	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (s *MongoStore) FindByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *MongoStore) Update(ctx context.Context, ownerID, id string, upd TaskUpdate) (Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.Done != nil {
		set["done"] = *upd.Done
	}

	var task Task
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (s *MongoStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Watch opens a change stream filtered to the owner's documents. Each
// change event is delivered as a single-document batch. The returned
// cancel function closes the stream and waits for the delivery goroutine
// to finish; it must be called to release the registration.
func (s *MongoStore) Watch(ctx context.Context, ownerID string, onData func(batch []Task), onError func(err error)) (func(), error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "fullDocument.owner_id", Value: ownerID}}}},
	}

	stream, err := s.coll.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for stream.Next(streamCtx) {
			var event struct {
				FullDocument Task `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onData != nil {
				onData([]Task{event.FullDocument})
			}
		}
		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			if onError != nil {
				onError(err)
			}
		}
	}()

	return func() {
		cancel()
		<-done
		_ = stream.Close(context.Background())
	}, nil
}
