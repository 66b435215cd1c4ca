package todo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domain "github.com/example/todo-tracker/domain/todo"
	"gorm.io/gorm"
)

// Repository provides access to todo storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task row.
func (r *Repository) Create(ctx context.Context, task domain.Task) error {
	row := toRow(task)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classify("insert", task.ID, err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	var row todoRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, newStoreError("get", id, ErrNotFound, nil)
		}
		return domain.Task{}, classify("get", id, err)
	}
	return toTask(row), nil
}

// FindAll retrieves every task, oldest first.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	var rows []todoRow
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, classify("list all", "", err)
	}
	return toTasks(rows), nil
}

// FindRecent retrieves at most limit tasks, newest first.
func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Task, error) {
	var rows []todoRow
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, classify("list recent", "", err)
	}
	return toTasks(rows), nil
}

// FindIncomplete retrieves tasks not yet completed, oldest first.
func (r *Repository) FindIncomplete(ctx context.Context) ([]domain.Task, error) {
	var rows []todoRow
	err := r.db.WithContext(ctx).
		Where("is_completed = ?", 0).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify("list incomplete", "", err)
	}
	return toTasks(rows), nil
}

// MarkComplete flags a task as completed and bumps updated_at.
// updated_at always moves forward, even when the clock has not.
func (r *Repository) MarkComplete(ctx context.Context, id string, now int64) error {
	result := r.db.WithContext(ctx).
		Model(&todoRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_completed": 1,
			"updated_at":   gorm.Expr("MAX(?, updated_at + 1)", now),
		})
	if err := result.Error; err != nil {
		return classify("mark complete", id, err)
	}
	if result.RowsAffected == 0 {
		return newStoreError("mark complete", id, ErrNotFound, nil)
	}
	return nil
}

// classify maps a gorm/driver error onto the store error taxonomy.
func classify(op, id string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return newStoreError(op, id, ErrDuplicateKey, err)
	case errors.Is(err, sql.ErrConnDone),
		strings.Contains(err.Error(), "database is closed"):
		return newStoreError(op, id, ErrConnection, err)
	default:
		return newStoreError(op, id, ErrQuery, err)
	}
}
