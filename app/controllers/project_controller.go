package controllers

import (
	"context"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/store"
	"estate-go/app/views"

	"github.com/gorilla/mux"
	"github.com/labstack/gommon/log"
)

type ProjectWriter interface {
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateProjectStatus(ctx context.Context, projectID, status string) error
	DeleteProject(ctx context.Context, projectID string) error
}

type PhaseWriter interface {
	CreatePhase(ctx context.Context, phase *models.Phase) (*models.Phase, error)
}

// ProjectController handles the project pages and the project creation flow.
type ProjectController struct {
	base
	views    *views.ReadModel
	projects ProjectWriter
	phases   PhaseWriter
}

func NewProjectController(state *store.Container, rm *views.ReadModel, projects ProjectWriter, phases PhaseWriter, logger *log.Logger) *ProjectController {
	return &ProjectController{base: base{state: state, log: logger}, views: rm, projects: projects, phases: phases}
}

type projectPage struct {
	views.ProjectDetail
	Tasks []models.Task `json:"tasks"`
}

// List handles GET /projects.
func (c *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "projects",
		Requires: access.ViewProjects,
		Needs:    []gate.Readiness{c.state.Projects, c.state.Organisations, c.state.Phases},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		details := c.views.ProjectDetails()
		if role == access.RoleAdmin {
			return details, gate.Ready
		}
		return views.ProjectsOf(details, profile.OrgID), gate.Ready
	})
}

// Get handles GET /projects/{projectID}. It stays in the loading state
// until the project and its organisation are both known.
func (c *ProjectController) Get(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	page := gate.Page{
		Name:     "project",
		Requires: access.ViewProjects,
		Needs:    []gate.Readiness{c.state.Projects, c.state.Organisations, c.state.Phases, c.state.Tasks},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		detail, ok := c.views.ProjectDetail(projectID)
		if !ok {
			return nil, gate.Loading
		}
		tasks := views.TasksForProject(c.state.Tasks.List(), projectID)
		if role != access.RoleAdmin {
			if detail.Project.OrgID != profile.OrgID {
				return nil, gate.Denied
			}
			tasks = views.TasksForAssignee(tasks, profile.ID)
		}
		return projectPage{ProjectDetail: detail, Tasks: tasks}, gate.Ready
	})
}

// Create handles POST /projects.
func (c *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.authorize(w, r, access.CreateProjects); !ok {
		return
	}
	var project models.Project
	if !decode(w, r, &project) {
		return
	}

	created, err := c.projects.CreateProject(r.Context(), &project)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateStatus handles PUT /projects/{projectID}/status.
func (c *ProjectController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.authorize(w, r, access.ManageProjects); !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}

	if err := c.projects.UpdateProjectStatus(r.Context(), mux.Vars(r)["projectID"], body.Status); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /projects/{projectID}.
func (c *ProjectController) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.authorize(w, r, access.ManageProjects); !ok {
		return
	}
	if err := c.projects.DeleteProject(r.Context(), mux.Vars(r)["projectID"]); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPhase handles POST /projects/{projectID}/phases.
func (c *ProjectController) AddPhase(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.authorize(w, r, access.ManageProjects); !ok {
		return
	}
	var phase models.Phase
	if !decode(w, r, &phase) {
		return
	}
	phase.ProjectID = mux.Vars(r)["projectID"]

	created, err := c.phases.CreatePhase(r.Context(), &phase)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
