package todo

import "time"

// CollectionName is the document collection holding tasks.
const CollectionName = "tasks"

// Task is one to-do document.
type Task struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	Title     string    `bson:"title" json:"title"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Done      bool      `bson:"done" json:"done"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Path is the document path within the database, derived from the
// collection name and the task id.
func (t Task) Path() string {
	return CollectionName + "/" + t.ID
}

// TaskUpdate describes a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	Title *string
	Notes *string
	Done  *bool
}
