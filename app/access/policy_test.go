package access_test

import (
	"testing"

	"estate-go/app/access"
	"estate-go/app/models"
)

func TestAllowed(t *testing.T) {
	admin := &models.Profile{ID: "a", Admin: true}
	employee := &models.Profile{ID: "e"}

	adminOnly := []access.Capability{
		access.ManageOrganisations,
		access.CreateProjects,
		access.ManageProjects,
		access.AssignTasks,
		access.ViewApprovals,
		access.DecideRequests,
		access.ManageUsers,
	}
	shared := []access.Capability{
		access.None,
		access.ViewDashboard,
		access.ViewOrganisations,
		access.ViewProjects,
		access.ViewTasks,
		access.UpdateOwnTasks,
		access.SubmitRequests,
		access.ViewSettings,
	}

	for _, c := range adminOnly {
		t.Run("admin only: "+c.String(), func(t *testing.T) {
			if !access.Allowed(admin, c) {
				t.Errorf("admin should hold %s", c)
			}
			if access.Allowed(employee, c) {
				t.Errorf("employee must not hold %s", c)
			}
		})
	}
	for _, c := range shared {
		t.Run("shared: "+c.String(), func(t *testing.T) {
			if !access.Allowed(admin, c) || !access.Allowed(employee, c) {
				t.Errorf("both roles should hold %s", c)
			}
		})
	}

	t.Run("nil profile holds nothing", func(t *testing.T) {
		if access.Allowed(nil, access.None) {
			t.Error("nil profile must not be allowed")
		}
	})

	t.Run("unknown capability", func(t *testing.T) {
		if access.Allowed(admin, access.Capability(999)) {
			t.Error("unknown capability must not be granted")
		}
	})
}

func TestRoleOf(t *testing.T) {
	if got := access.RoleOf(models.Profile{Admin: true}); got != access.RoleAdmin {
		t.Errorf("want admin, got %s", got)
	}
	if got := access.RoleOf(models.Profile{}); got != access.RoleEmployee {
		t.Errorf("want employee, got %s", got)
	}
}
