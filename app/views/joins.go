// Package views derives read-only joined views from the entity stores.
// Nothing here mutates a store.
package views

import (
	"sort"

	"estate-go/app/models"
	"estate-go/app/store"
)

type ProjectDetail struct {
	Project      models.Project       `json:"project"`
	Organisation *models.Organisation `json:"organisation"`
	Phases       []models.Phase       `json:"phases"`
}

// Resolved reports whether the project joined to its organisation.
func (d ProjectDetail) Resolved() bool { return d.Organisation != nil }

type RequestDetail struct {
	Request      models.Request       `json:"request"`
	Organisation *models.Organisation `json:"organisation,omitempty"`
	Project      *models.Project      `json:"project,omitempty"`
	Requester    *models.Profile      `json:"requester,omitempty"`
}

// ProjectOrganisation finds the organisation owning projectID.
//
// ok is false while either collection is not loaded, when the project is
// unknown, or when no organisation matches the project's org_id. Callers
// render a loading state in every one of those cases.
func ProjectOrganisation(
	projects *store.Collection[models.Project],
	orgs *store.Collection[models.Organisation],
	projectID string,
) (project models.Project, org models.Organisation, ok bool) {
	if !projects.Loaded() || !orgs.Loaded() {
		return project, org, false
	}
	project, ok = projects.Get(projectID)
	if !ok {
		return project, org, false
	}
	org, ok = orgs.Get(project.OrgID)
	return project, org, ok
}

// TasksForAssignee keeps the tasks assigned to assigneeID, in input order.
func TasksForAssignee(tasks []models.Task, assigneeID string) []models.Task {
	return filter(tasks, models.AssignedTo(assigneeID))
}

func ProjectsForOrganisation(projects []models.Project, orgID string) []models.Project {
	return filter(projects, func(p models.Project) bool { return orgID != "" && p.OrgID == orgID })
}

func TasksForProject(tasks []models.Task, projectID string) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.ProjectID == projectID })
}

// PhasesForProject returns the phases of projectID ordered by position.
func PhasesForProject(phases []models.Phase, projectID string) []models.Phase {
	out := filter(phases, func(ph models.Phase) bool { return ph.ProjectID == projectID })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func RequestsForOrganisation(details []RequestDetail, orgID string) []RequestDetail {
	return filter(details, func(d RequestDetail) bool { return orgID != "" && d.Request.OrgID == orgID })
}

// RequestTargets joins a request to whatever it points at. Missing targets
// are left nil.
func RequestTargets(
	r models.Request,
	orgs map[string]models.Organisation,
	projects map[string]models.Project,
	profiles map[string]models.Profile,
) RequestDetail {
	d := RequestDetail{Request: r}
	if o, ok := orgs[r.OrgID]; ok {
		d.Organisation = &o
	}
	if p, ok := projects[r.ProjectID]; ok && r.ProjectID != "" {
		d.Project = &p
	}
	if pr, ok := profiles[r.RequesterID]; ok {
		d.Requester = &pr
	}
	return d
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
