package views

import (
	"estate-go/app/models"
	"estate-go/app/store"
)

type AdminSummary struct {
	Organisations    int            `json:"organisations"`
	Members          int            `json:"members"`
	Projects         int            `json:"projects"`
	ProjectsByStatus map[string]int `json:"projects_by_status"`
	PendingRequests  int            `json:"pending_requests"`
	OpenTasks        int            `json:"open_tasks"`
}

func SummariseForAdmin(c *store.Container) AdminSummary {
	s := AdminSummary{
		Organisations:    c.Organisations.Len(),
		Members:          c.Profiles.Len(),
		ProjectsByStatus: map[string]int{},
	}
	for _, p := range c.Projects.List() {
		s.Projects++
		s.ProjectsByStatus[p.Status]++
	}
	s.PendingRequests = len(c.Requests.Filter(models.Request.Pending))
	s.OpenTasks = len(c.Tasks.Filter(models.Task.Open))
	return s
}

type EmployeeSummary struct {
	Organisation *models.Organisation `json:"organisation,omitempty"`
	Tasks        []models.Task        `json:"tasks"`
	OpenTasks    int                  `json:"open_tasks"`
}

func SummariseForEmployee(c *store.Container, profile models.Profile) EmployeeSummary {
	s := EmployeeSummary{Tasks: c.TasksAssignedTo(profile.ID)}
	for _, t := range s.Tasks {
		if t.Open() {
			s.OpenTasks++
		}
	}
	if org, ok := c.Organisations.Get(profile.OrgID); ok {
		s.Organisation = &org
	}
	return s
}
