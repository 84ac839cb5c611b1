package models

import "strings"

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Request asks an organisation admin to approve something, e.g. materials
// for a project or joining the organisation.
type Request struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	OrgID       string `json:"org_id"`
	ProjectID   string `json:"project_id,omitempty"`
	RequesterID string `json:"requester_id"`
	Note        string `json:"note"`
	Status      string `json:"status"`
	DecidedBy   string `json:"decided_by,omitempty"`
}

func (r Request) Key() string { return r.ID }

func (r Request) Pending() bool { return r.Status == RequestPending }

// Validate checks a newly submitted request. Submitted requests are always pending.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Kind) == "" {
		return invalid("request kind is required")
	}
	if r.OrgID == "" {
		return invalid("request org_id is required")
	}
	r.Status = RequestPending
	return nil
}

// ValidateDecision accepts only the terminal request states.
func ValidateDecision(status string) error {
	if !oneOf(status, RequestApproved, RequestRejected) {
		return invalid("unknown decision %q", status)
	}
	return nil
}
