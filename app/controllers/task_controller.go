package controllers

import (
	"context"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/gorilla/mux"
	"github.com/labstack/gommon/log"
)

type TaskWriter interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) error
}

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	base
	service TaskWriter
}

// NewTaskController creates a new TaskController.
func NewTaskController(state *store.Container, service TaskWriter, logger *log.Logger) *TaskController {
	return &TaskController{base: base{state: state, log: logger}, service: service}
}

// List handles GET /tasks. Employees only see tasks assigned to them.
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "tasks",
		Requires: access.ViewTasks,
		Needs:    []gate.Readiness{c.state.Tasks},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		if role == access.RoleAdmin {
			return c.state.Tasks.List(), gate.Ready
		}
		return c.state.TasksAssignedTo(profile.ID), gate.Ready
	})
}

// Create handles POST /tasks.
func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.authorize(w, r, access.AssignTasks); !ok {
		return
	}
	var task models.Task
	if !decode(w, r, &task) {
		return
	}

	created, err := c.service.CreateTask(r.Context(), &task)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateStatus handles PUT /tasks/{taskID}/status. Admins may move any task,
// employees only their own.
func (c *TaskController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	profile, ok := c.authorize(w, r, access.UpdateOwnTasks)
	if !ok {
		return
	}
	if !access.Allowed(&profile, access.AssignTasks) {
		task, found := c.state.Tasks.Get(taskID)
		if !found || task.Assignee != profile.ID {
			http.Error(w, AccessDenied, http.StatusForbidden)
			return
		}
	}

	var updates struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &updates) {
		return
	}

	if err := c.service.UpdateTaskStatus(r.Context(), taskID, updates.Status); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
