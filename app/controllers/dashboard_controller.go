package controllers

import (
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/session"
	"estate-go/app/store"
	"estate-go/app/views"

	"github.com/labstack/gommon/log"
)

// DashboardController serves the landing pages.
type DashboardController struct {
	base
}

func NewDashboardController(state *store.Container, logger *log.Logger) *DashboardController {
	return &DashboardController{base{state: state, log: logger}}
}

// Home handles GET /. It is public.
func (c *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	_, signedIn := session.ProfileID(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"signed_in": signedIn})
}

// Dashboard handles GET /dashboard.
func (c *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "dashboard",
		Requires: access.ViewDashboard,
		Needs:    []gate.Readiness{c.state.Tasks, c.state.Organisations, c.state.Projects, c.state.Requests},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		if role == access.RoleAdmin {
			return views.SummariseForAdmin(c.state), gate.Ready
		}
		return views.SummariseForEmployee(c.state, profile), gate.Ready
	})
}
