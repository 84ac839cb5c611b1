package services

import (
	"context"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// TaskService handles task-related operations.
type TaskService struct {
	driver neo4j.DriverWithContext
	tasks  *store.Collection[models.Task]
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(driver neo4j.DriverWithContext, state *store.Container) *TaskService {
	return &TaskService{driver: driver, tasks: state.Tasks}
}

// ListTasks retrieves all tasks from the database.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return readAll(ctx, s.driver,
		"MATCH (t:Task) "+
			"OPTIONAL MATCH (t)-[:PART_OF]->(p:Project) "+
			"OPTIONAL MATCH (t)-[:ASSIGNED_TO]->(u:Profile) "+
			"RETURN t.id AS id, t.title AS title, t.status AS status, p.id AS project_id, u.id AS assignee",
		nil,
		func(r *neo4j.Record) models.Task {
			return models.Task{
				ID:        str(r, "id"),
				Title:     str(r, "title"),
				ProjectID: str(r, "project_id"),
				Assignee:  str(r, "assignee"),
				Status:    str(r, "status"),
			}
		},
	)
}

// CreateTask adds a new task to a project and assigns it when an assignee is set.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	// If the task ID is not set, generate a new UUID
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (p:Project {id: $project_id}) "+
				"CREATE (t:Task {id: $id, title: $title, status: $status})-[:PART_OF]->(p) "+
				"RETURN t.id",
			map[string]any{
				"id":         task.ID,
				"title":      task.Title,
				"status":     task.Status,
				"project_id": task.ProjectID,
			},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		if task.Assignee == "" {
			return nil
		}
		found, err = matched(ctx, tx,
			"MATCH (t:Task {id: $id}), (u:Profile {id: $assignee}) "+
				"CREATE (t)-[:ASSIGNED_TO]->(u) "+
				"RETURN u.id",
			map[string]any{"id": task.ID, "assignee": task.Assignee},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.tasks.Put(*task)
	return task, nil
}

// UpdateTaskStatus moves a task to another status.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	if err := models.ValidateTaskStatus(status); err != nil {
		return err
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (t:Task {id: $id}) SET t.status = $status RETURN t.id",
			map[string]any{"id": taskID, "status": status},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if t, ok := s.tasks.Get(taskID); ok {
		t.Status = status
		s.tasks.Put(t)
	}
	return nil
}
