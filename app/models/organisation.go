package models

import "strings"

// Organisation groups profiles and owns projects.
type Organisation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AdminID string `json:"admin_id"`
}

func (o Organisation) Key() string { return o.ID }

func (o Organisation) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return invalid("organisation name is required")
	}
	return nil
}
