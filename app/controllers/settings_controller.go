package controllers

import (
	"context"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/labstack/gommon/log"
)

type ProfileWriter interface {
	UpdateProfileName(ctx context.Context, profileID, name string) error
}

type SettingsController struct {
	base
	service ProfileWriter
}

func NewSettingsController(state *store.Container, service ProfileWriter, logger *log.Logger) *SettingsController {
	return &SettingsController{base: base{state: state, log: logger}, service: service}
}

type settingsPage struct {
	Profile       models.Profile        `json:"profile"`
	Organisations []models.Organisation `json:"organisations,omitempty"`
}

// Get handles GET /settings. Admins also see the organisations they administer.
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "settings",
		Requires: access.ViewSettings,
		Needs:    []gate.Readiness{c.state.Organisations},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		out := settingsPage{Profile: profile}
		if role == access.RoleAdmin {
			out.Organisations = c.state.Organisations.Filter(func(o models.Organisation) bool {
				return o.AdminID == profile.ID
			})
		}
		return out, gate.Ready
	})
}

// Update handles PUT /settings.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := c.authorize(w, r, access.ViewSettings)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &body) {
		return
	}

	if err := c.service.UpdateProfileName(r.Context(), profile.ID, body.Name); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
