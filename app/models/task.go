package models

import "strings"

const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task represents a unit of work on a project, optionally assigned to a profile.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
	Assignee  string `json:"assignee"`
	Status    string `json:"status"`
}

func (t Task) Key() string { return t.ID }

// Open reports whether the task still needs work.
func (t Task) Open() bool { return t.Status != TaskDone }

// AssignedTo returns a predicate matching tasks whose assignee is id.
// An empty id matches nothing.
func AssignedTo(id string) func(Task) bool {
	return func(t Task) bool {
		return id != "" && t.Assignee == id
	}
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("task title is required")
	}
	if t.ProjectID == "" {
		return invalid("task project_id is required")
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	return ValidateTaskStatus(t.Status)
}

func ValidateTaskStatus(status string) error {
	if !oneOf(status, TaskTodo, TaskInProgress, TaskDone) {
		return invalid("unknown task status %q", status)
	}
	return nil
}
