package todo

import (
	domain "github.com/example/todo-tracker/domain/todo"
)

// todoRow is the persisted form of a Task in the todos table.
type todoRow struct {
	ID          string `gorm:"column:id;primaryKey;type:text"`
	Title       string `gorm:"column:title;type:text"`
	IsCompleted int    `gorm:"column:is_completed;type:integer"`
	CreatedAt   int64  `gorm:"column:created_at;type:integer;autoCreateTime:false"`
	UpdatedAt   int64  `gorm:"column:updated_at;type:integer;autoUpdateTime:false"`
}

// TableName returns the table name for todoRow.
func (todoRow) TableName() string {
	return "todos"
}

func toRow(task domain.Task) todoRow {
	completed := 0
	if task.Completed {
		completed = 1
	}
	return todoRow{
		ID:          task.ID,
		Title:       task.Title,
		IsCompleted: completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTask(row todoRow) domain.Task {
	return domain.New(row.ID, row.Title, row.IsCompleted != 0, row.CreatedAt, row.UpdatedAt)
}

func toTasks(rows []todoRow) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, toTask(row))
	}
	return tasks
}
