// Package access decides what a profile may see and do.
//
// Every gated page and mutation asks Allowed; no caller inspects
// Profile.Admin directly.
package access

import "estate-go/app/models"

type Role int

const (
	RoleEmployee Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "employee"
}

// RoleOf derives the role of a profile.
func RoleOf(p models.Profile) Role {
	if p.Admin {
		return RoleAdmin
	}
	return RoleEmployee
}

type Capability int

const (
	// None is the requirement of pages open to every signed-in profile.
	None Capability = iota
	ViewDashboard
	ViewOrganisations
	ManageOrganisations
	ViewProjects
	CreateProjects
	ManageProjects
	ViewTasks
	AssignTasks
	UpdateOwnTasks
	ViewApprovals
	DecideRequests
	SubmitRequests
	ViewSettings
	ManageUsers
)

var capabilityNames = map[Capability]string{
	None:                "none",
	ViewDashboard:       "view-dashboard",
	ViewOrganisations:   "view-organisations",
	ManageOrganisations: "manage-organisations",
	ViewProjects:        "view-projects",
	CreateProjects:      "create-projects",
	ManageProjects:      "manage-projects",
	ViewTasks:           "view-tasks",
	AssignTasks:         "assign-tasks",
	UpdateOwnTasks:      "update-own-tasks",
	ViewApprovals:       "view-approvals",
	DecideRequests:      "decide-requests",
	SubmitRequests:      "submit-requests",
	ViewSettings:        "view-settings",
	ManageUsers:         "manage-users",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

var employeeGrants = map[Capability]bool{
	ViewDashboard:     true,
	ViewOrganisations: true,
	ViewProjects:      true,
	ViewTasks:         true,
	UpdateOwnTasks:    true,
	SubmitRequests:    true,
	ViewSettings:      true,
}

// Grants reports whether role holds capability.
func Grants(role Role, capability Capability) bool {
	if capability == None {
		return true
	}
	switch role {
	case RoleAdmin:
		_, known := capabilityNames[capability]
		return known
	case RoleEmployee:
		return employeeGrants[capability]
	}
	return false
}

// Allowed reports whether profile holds capability. A nil profile holds nothing.
func Allowed(profile *models.Profile, capability Capability) bool {
	if profile == nil {
		return false
	}
	return Grants(RoleOf(*profile), capability)
}
