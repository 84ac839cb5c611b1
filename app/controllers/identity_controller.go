package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/identity"
	"estate-go/app/store"

	"github.com/labstack/gommon/log"
)

type UserDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

type ProfileRemover interface {
	DeleteProfile(ctx context.Context, profileID string) error
}

// DeletionRecorder counts proxied deletions.
type DeletionRecorder interface {
	UserDeleted(outcome string)
}

// IdentityController proxies account deletion to the identity provider.
// The service-role credential never leaves the server.
type IdentityController struct {
	base
	deleter  UserDeleter
	profiles ProfileRemover
	recorder DeletionRecorder
}

func NewIdentityController(state *store.Container, deleter UserDeleter, profiles ProfileRemover, recorder DeletionRecorder, logger *log.Logger) *IdentityController {
	return &IdentityController{
		base:     base{state: state, log: logger},
		deleter:  deleter,
		profiles: profiles,
		recorder: recorder,
	}
}

// DeleteUser handles POST /api/delete-user with body {"userId": "..."}.
// A signed-in profile may delete itself; admins may delete anyone.
func (c *IdentityController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := c.authorize(w, r, access.None)
	if !ok {
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.log.Errorf("delete user: %v", err)
		c.recorder.UserDeleted("failure")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.UserID == "" {
		c.log.Errorf("delete user: %v", identity.ErrMissingUserID)
		c.recorder.UserDeleted("failure")
		writeError(w, http.StatusBadRequest, identity.ErrMissingUserID.Error())
		return
	}
	if body.UserID != caller.ID && !access.Allowed(&caller, access.ManageUsers) {
		writeError(w, http.StatusForbidden, AccessDenied)
		return
	}

	if err := c.deleter.DeleteUser(r.Context(), body.UserID); err != nil {
		c.log.Errorf("delete user %s: %v", body.UserID, err)
		c.recorder.UserDeleted("failure")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.recorder.UserDeleted("success")

	if err := c.profiles.DeleteProfile(r.Context(), body.UserID); err != nil {
		c.log.Warnf("delete user %s: profile left behind: %v", body.UserID, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
