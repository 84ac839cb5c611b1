package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"estate-go/app/access"
	"estate-go/app/gate"
	"estate-go/app/models"
	"estate-go/app/services"
	"estate-go/app/session"
	"estate-go/app/store"

	"github.com/labstack/gommon/log"
)

// AccessDenied is the whole body of a denied page.
const AccessDenied = "Access denied"

// pageView is the body of every page endpoint.
type pageView struct {
	State   string `json:"state"`
	Variant string `json:"variant,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// base carries what every controller needs.
type base struct {
	state *store.Container
	log   *log.Logger
}

// render is called once the gate let the page through. It may still hold
// the page back: gate.Loading while a join has no partner yet, gate.Denied
// when the record is outside the viewer's reach.
type render func(profile models.Profile, role access.Role) (data any, state gate.State)

// servePage runs the page state machine and answers accordingly:
// redirect home, loading, access denied, or the role variant.
func (b base) servePage(w http.ResponseWriter, r *http.Request, page gate.Page, fn render) {
	viewer := session.Resolve(r.Context(), b.state.Profiles)
	decision := page.Evaluate(viewer)

	switch decision.State {
	case gate.Unresolved:
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case gate.Denied:
		http.Error(w, AccessDenied, http.StatusForbidden)
		return
	case gate.Loading:
		writeLoading(w)
		return
	}

	data, state := fn(*viewer.Profile, decision.Role)
	switch state {
	case gate.Loading:
		writeLoading(w)
		return
	case gate.Denied:
		http.Error(w, AccessDenied, http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, pageView{
		State:   gate.Ready.String(),
		Variant: decision.Role.String(),
		Data:    data,
	})
}

// authorize resolves the caller of a mutation and checks capability.
// On failure the response has been written and ok is false.
func (b base) authorize(w http.ResponseWriter, r *http.Request, capability access.Capability) (profile models.Profile, ok bool) {
	_, signedIn := session.ProfileID(r.Context())
	viewer := session.Resolve(r.Context(), b.state.Profiles)
	switch {
	case signedIn && !b.state.Profiles.Loaded():
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "profile not loaded yet")
		return profile, false
	case viewer.Profile == nil:
		writeError(w, http.StatusUnauthorized, "not signed in")
		return profile, false
	case !access.Allowed(viewer.Profile, capability):
		http.Error(w, AccessDenied, http.StatusForbidden)
		return profile, false
	}
	return *viewer.Profile, true
}

// fail maps a mutation error onto a status code.
func (b base) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		b.log.Errorf("%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	writeJSON(w, http.StatusAccepted, pageView{State: gate.Loading.String()})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
