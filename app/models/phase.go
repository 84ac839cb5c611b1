package models

import "strings"

const (
	PhasePending = "pending"
	PhaseActive  = "active"
	PhaseDone    = "done"
)

// Phase is an ordered stage of a project.
type Phase struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
	Position  int    `json:"position"`
	Status    string `json:"status"`
}

func (p Phase) Key() string { return p.ID }

func (p *Phase) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("phase name is required")
	}
	if p.ProjectID == "" {
		return invalid("phase project_id is required")
	}
	if p.Position < 0 {
		return invalid("phase position must not be negative")
	}
	if p.Status == "" {
		p.Status = PhasePending
	}
	if !oneOf(p.Status, PhasePending, PhaseActive, PhaseDone) {
		return invalid("unknown phase status %q", p.Status)
	}
	return nil
}
