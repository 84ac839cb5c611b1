package models

import "strings"

const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
)

// Project is a construction or real-estate project owned by one organisation.
type Project struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OrgID   string `json:"org_id"`
	Status  string `json:"status"`
	Address string `json:"address"`
}

func (p Project) Key() string { return p.ID }

// Validate fills the default status and checks required fields.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("project name is required")
	}
	if p.OrgID == "" {
		return invalid("project org_id is required")
	}
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
	return ValidateProjectStatus(p.Status)
}

func ValidateProjectStatus(status string) error {
	if !oneOf(status, ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted) {
		return invalid("unknown project status %q", status)
	}
	return nil
}
