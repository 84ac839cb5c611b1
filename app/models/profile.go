package models

// Profile is the application-side record of a signed-up user.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
	OrgID string `json:"org_id"`
}

func (p Profile) Key() string { return p.ID }
