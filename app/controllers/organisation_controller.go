package controllers

import (
	"context"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/store"
	"estate-go/app/views"

	"github.com/gorilla/mux"
	"github.com/labstack/gommon/log"
)

type OrganisationWriter interface {
	CreateOrganisation(ctx context.Context, org *models.Organisation) (*models.Organisation, error)
}

// OrganisationController handles the organisation pages.
type OrganisationController struct {
	base
	views   *views.ReadModel
	service OrganisationWriter
}

func NewOrganisationController(state *store.Container, rm *views.ReadModel, service OrganisationWriter, logger *log.Logger) *OrganisationController {
	return &OrganisationController{base: base{state: state, log: logger}, views: rm, service: service}
}

type organisationOverview struct {
	Organisation    models.Organisation `json:"organisation"`
	Projects        int                 `json:"projects"`
	Members         int                 `json:"members"`
	PendingRequests int                 `json:"pending_requests"`
}

type organisationDetail struct {
	Organisation models.Organisation   `json:"organisation"`
	Projects     []models.Project      `json:"projects"`
	Members      []models.Profile      `json:"members,omitempty"`
	Requests     []views.RequestDetail `json:"requests,omitempty"`
}

func (c *OrganisationController) overview(org models.Organisation, requests []views.RequestDetail) organisationOverview {
	return organisationOverview{
		Organisation:    org,
		Projects:        len(views.ProjectsForOrganisation(c.state.Projects.List(), org.ID)),
		Members:         len(c.state.Profiles.Filter(func(p models.Profile) bool { return p.OrgID == org.ID })),
		PendingRequests: len(views.PendingOnly(views.RequestsForOrganisation(requests, org.ID))),
	}
}

// List handles GET /organisations.
func (c *OrganisationController) List(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "organisations",
		Requires: access.ViewOrganisations,
		Needs:    []gate.Readiness{c.state.Organisations, c.state.Projects, c.state.Requests},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		out := []organisationOverview{}
		requests := c.views.RequestDetails()
		for _, org := range c.state.Organisations.List() {
			if role == access.RoleAdmin || org.ID == profile.OrgID {
				out = append(out, c.overview(org, requests))
			}
		}
		return out, gate.Ready
	})
}

// Get handles GET /organisations/{orgID}.
func (c *OrganisationController) Get(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgID"]

	page := gate.Page{
		Name:     "organisation",
		Requires: access.ViewOrganisations,
		Needs:    []gate.Readiness{c.state.Organisations, c.state.Projects, c.state.Requests},
	}
	c.servePage(w, r, page, func(profile models.Profile, role access.Role) (any, gate.State) {
		if role != access.RoleAdmin && profile.OrgID != orgID {
			return nil, gate.Denied
		}
		org, ok := c.state.Organisations.Get(orgID)
		if !ok {
			return nil, gate.Loading
		}
		detail := organisationDetail{
			Organisation: org,
			Projects:     views.ProjectsForOrganisation(c.state.Projects.List(), orgID),
		}
		if role == access.RoleAdmin {
			detail.Members = c.state.Profiles.Filter(func(p models.Profile) bool { return p.OrgID == orgID })
			detail.Requests = views.RequestsForOrganisation(c.views.RequestDetails(), orgID)
		}
		return detail, gate.Ready
	})
}

// Create handles POST /organisations.
func (c *OrganisationController) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := c.authorize(w, r, access.ManageOrganisations)
	if !ok {
		return
	}
	var org models.Organisation
	if !decode(w, r, &org) {
		return
	}
	if org.AdminID == "" {
		org.AdminID = profile.ID
	}

	created, err := c.service.CreateOrganisation(r.Context(), &org)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
