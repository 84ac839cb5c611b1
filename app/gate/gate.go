// Package gate decides, per page and per request, whether the page can be
// rendered yet and in which variant.
package gate

import (
	"estate-go/app/access"
	"estate-go/app/models"
)

type State int

const (
	// Unresolved: the signed-in profile is not known (yet). The page must
	// send the visitor home.
	Unresolved State = iota
	// Loading: the page waits for its collections.
	Loading
	// Denied: the signed-in role lacks the page's capability.
	Denied
	// Ready: the page can render its role variant.
	Ready
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Loading:
		return "loading"
	case Denied:
		return "denied"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Readiness is satisfied by every store collection.
type Readiness interface {
	Loaded() bool
}

// Viewer is who is asking for a page.
type Viewer struct {
	// Profile is nil until the session's profile is known.
	Profile *models.Profile
}

// Page declares what a page needs before it can render.
type Page struct {
	Name     string
	Requires access.Capability
	Needs    []Readiness
}

type Decision struct {
	State State
	Role  access.Role
}

// Evaluate runs the page state machine for viewer. It is re-run on every
// request, so transitions follow store population only.
func (p Page) Evaluate(viewer Viewer) Decision {
	if viewer.Profile == nil {
		return Decision{State: Unresolved}
	}

	role := access.RoleOf(*viewer.Profile)
	if !access.Allowed(viewer.Profile, p.Requires) {
		return Decision{State: Denied, Role: role}
	}
	for _, need := range p.Needs {
		if !need.Loaded() {
			return Decision{State: Loading, Role: role}
		}
	}
	return Decision{State: Ready, Role: role}
}
