package todo

import (
	"time"

	domain "github.com/example/todo-tracker/domain/todo"
)

// ListTasksRequest selects which tasks List returns.
type ListTasksRequest struct {
	Limit      *int `json:"limit,omitempty"`
	Incomplete bool `json:"incomplete,omitempty"`
}

// TaskResponse represents a task in JSON output.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListTasksResponse is the JSON shape of a task listing.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ToTaskResponse converts a domain Task to a TaskResponse.
func ToTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedTime().UTC(),
		UpdatedAt: task.UpdatedTime().UTC(),
	}
}

// ToListTasksResponse converts a slice of tasks to a ListTasksResponse.
func ToListTasksResponse(tasks []domain.Task) ListTasksResponse {
	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, ToTaskResponse(task))
	}
	return response
}
