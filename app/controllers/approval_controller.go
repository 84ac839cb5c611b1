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

type RequestWriter interface {
	CreateRequest(ctx context.Context, req *models.Request) (*models.Request, error)
	DecideRequest(ctx context.Context, requestID, status, deciderID string) error
}

// ApprovalController handles request submission and the admin approvals page.
type ApprovalController struct {
	base
	views   *views.ReadModel
	service RequestWriter
}

func NewApprovalController(state *store.Container, rm *views.ReadModel, service RequestWriter, logger *log.Logger) *ApprovalController {
	return &ApprovalController{base: base{state: state, log: logger}, views: rm, service: service}
}

var decisions = map[string]string{
	"approve": models.RequestApproved,
	"reject":  models.RequestRejected,
}

// List handles GET /approvals.
func (c *ApprovalController) List(w http.ResponseWriter, r *http.Request) {
	page := gate.Page{
		Name:     "approvals",
		Requires: access.ViewApprovals,
		Needs:    []gate.Readiness{c.state.Requests, c.state.Organisations, c.state.Projects},
	}
	c.servePage(w, r, page, func(models.Profile, access.Role) (any, gate.State) {
		return c.views.RequestDetails(), gate.Ready
	})
}

// Submit handles POST /requests. Employees file requests against their own
// organisation when none is named.
func (c *ApprovalController) Submit(w http.ResponseWriter, r *http.Request) {
	profile, ok := c.authorize(w, r, access.SubmitRequests)
	if !ok {
		return
	}
	var req models.Request
	if !decode(w, r, &req) {
		return
	}
	req.RequesterID = profile.ID
	req.DecidedBy = ""
	if req.OrgID == "" {
		req.OrgID = profile.OrgID
	}

	created, err := c.service.CreateRequest(r.Context(), &req)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Decide handles POST /approvals/{requestID}/{decision}.
func (c *ApprovalController) Decide(w http.ResponseWriter, r *http.Request) {
	profile, ok := c.authorize(w, r, access.DecideRequests)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	status, known := decisions[vars["decision"]]
	if !known {
		writeError(w, http.StatusBadRequest, "decision must be approve or reject")
		return
	}

	if err := c.service.DecideRequest(r.Context(), vars["requestID"], status, profile.ID); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
