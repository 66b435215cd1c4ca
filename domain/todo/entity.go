package todo

import "time"

// Task is the core domain entity representing a todo item.
// Timestamps are epoch milliseconds.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// New builds a Task from its fields. It performs no validation.
func New(id, title string, completed bool, createdAt, updatedAt int64) Task {
	return Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// GetID returns the task identifier.
func (t Task) GetID() string {
	return t.ID
}

// CreatedTime returns CreatedAt as a time.Time.
func (t Task) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (t Task) UpdatedTime() time.Time {
	return time.UnixMilli(t.UpdatedAt)
}

// NowMillis returns the current wall clock in epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
