package todo

import (
	"context"
	"errors"
	"strings"

	domain "github.com/example/todo-tracker/domain/todo"
	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a task is created without a title.
var ErrEmptyTitle = errors.New("title is required")

// Service creates and updates tasks on top of a Store.
type Service struct {
	store *Store
	now   func() int64
}

// NewService creates a Service bound to store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: domain.NowMillis}
}

// Create records a new incomplete task with a fresh id.
func (s *Service) Create(ctx context.Context, title string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, ErrEmptyTitle
	}

	now := s.now()
	task := domain.New(uuid.New().String(), title, false, now, now)

	if err := s.store.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Get returns a task by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.store.Get(ctx, strings.TrimSpace(id))
}

// Complete marks a task complete and returns its refreshed state.
func (s *Service) Complete(ctx context.Context, id string) (domain.Task, error) {
	id = strings.TrimSpace(id)
	if err := s.store.MarkComplete(ctx, id); err != nil {
		return domain.Task{}, err
	}
	return s.store.Get(ctx, id)
}

// List returns every task, the most recent limit tasks when limit > 0, or
// only incomplete tasks when incomplete is set.
func (s *Service) List(ctx context.Context, req ListTasksRequest) ([]domain.Task, error) {
	switch {
	case req.Incomplete:
		return s.store.ListIncomplete(ctx)
	case req.Limit != nil:
		return s.store.ListRecent(ctx, *req.Limit)
	default:
		return s.store.ListAll(ctx)
	}
}
