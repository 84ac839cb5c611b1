package gate_test

import (
	"testing"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
)

type flag bool

func (f flag) Loaded() bool { return bool(f) }

func TestPage_Evaluate(t *testing.T) {
	admin := &models.Profile{ID: "a", Admin: true}
	employee := &models.Profile{ID: "e"}

	type When struct {
		page   gate.Page
		viewer gate.Viewer
	}
	type Then struct {
		state gate.State
		role  access.Role
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			got := when.page.Evaluate(when.viewer)
			if got.State != then.state {
				t.Fatalf("state: want %s, got %s", then.state, got.State)
			}
			if got.State != gate.Unresolved && got.Role != then.role {
				t.Errorf("role: want %s, got %s", then.role, got.Role)
			}
		}
	}

	t.Run("no profile is unresolved even when data is loaded", theory(
		When{
			page:   gate.Page{Requires: access.ViewDashboard, Needs: []gate.Readiness{flag(true)}},
			viewer: gate.Viewer{},
		},
		Then{state: gate.Unresolved},
	))

	t.Run("no profile is unresolved while data is still loading", theory(
		When{
			page:   gate.Page{Requires: access.ViewDashboard, Needs: []gate.Readiness{flag(false)}},
			viewer: gate.Viewer{},
		},
		Then{state: gate.Unresolved},
	))

	t.Run("employee on admin-only page is denied before data loads", theory(
		When{
			page:   gate.Page{Requires: access.ViewApprovals, Needs: []gate.Readiness{flag(false)}},
			viewer: gate.Viewer{Profile: employee},
		},
		Then{state: gate.Denied, role: access.RoleEmployee},
	))

	t.Run("employee on admin-only page is denied with data loaded", theory(
		When{
			page:   gate.Page{Requires: access.ViewApprovals, Needs: []gate.Readiness{flag(true)}},
			viewer: gate.Viewer{Profile: employee},
		},
		Then{state: gate.Denied, role: access.RoleEmployee},
	))

	t.Run("admin waits for every needed collection", theory(
		When{
			page:   gate.Page{Requires: access.ViewApprovals, Needs: []gate.Readiness{flag(true), flag(false)}},
			viewer: gate.Viewer{Profile: admin},
		},
		Then{state: gate.Loading, role: access.RoleAdmin},
	))

	t.Run("admin ready", theory(
		When{
			page:   gate.Page{Requires: access.ViewApprovals, Needs: []gate.Readiness{flag(true), flag(true)}},
			viewer: gate.Viewer{Profile: admin},
		},
		Then{state: gate.Ready, role: access.RoleAdmin},
	))

	t.Run("employee ready on shared page", theory(
		When{
			page:   gate.Page{Requires: access.ViewTasks, Needs: []gate.Readiness{flag(true)}},
			viewer: gate.Viewer{Profile: employee},
		},
		Then{state: gate.Ready, role: access.RoleEmployee},
	))
}
