package views

import (
	"sort"
	"sync"
	"sync/atomic"

	"estate-go/app/models"
	"estate-go/app/store"
)

// ReadModel keeps the joined project and request views in one place.
//
// It subscribes to the collections it joins and rebuilds lazily on the next
// read after any of them changed, so every reader sees one consistent,
// ordered rendition of the joins.
type ReadModel struct {
	state *store.Container

	dirty       atomic.Bool
	unsubscribe []func()

	mu        sync.Mutex
	projects  []ProjectDetail
	byProject map[string]int
	requests  []RequestDetail
}

func NewReadModel(state *store.Container) *ReadModel {
	m := &ReadModel{state: state}
	m.dirty.Store(true)
	for _, col := range []store.Observable{
		state.Profiles, state.Organisations, state.Projects, state.Phases, state.Requests,
	} {
		m.unsubscribe = append(m.unsubscribe, col.Subscribe(func(store.Change) {
			m.dirty.Store(true)
		}))
	}
	return m
}

// Close detaches the read model from the stores.
func (m *ReadModel) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
}

// ProjectDetails lists every project, ordered by name then id. Projects
// whose organisation is missing carry a nil Organisation.
func (m *ReadModel) ProjectDetails() []ProjectDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	return append([]ProjectDetail(nil), m.projects...)
}

// ProjectDetail returns the joined view of one project. ok is false until
// the project and its organisation are both present.
func (m *ReadModel) ProjectDetail(projectID string) (ProjectDetail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	i, found := m.byProject[projectID]
	if !found {
		return ProjectDetail{}, false
	}
	d := m.projects[i]
	return d, d.Resolved()
}

// RequestDetails lists every request, pending ones first, then by id.
func (m *ReadModel) RequestDetails() []RequestDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh()
	return append([]RequestDetail(nil), m.requests...)
}

// refresh must be called with mu held.
func (m *ReadModel) refresh() {
	if !m.dirty.Swap(false) {
		return
	}

	orgs, _ := m.state.Organisations.Snapshot()
	projects, _ := m.state.Projects.Snapshot()
	profiles, _ := m.state.Profiles.Snapshot()
	phases := m.state.Phases.List()

	details := make([]ProjectDetail, 0, len(projects))
	for _, p := range projects {
		d := ProjectDetail{Project: p, Phases: PhasesForProject(phases, p.ID)}
		if _, o, ok := ProjectOrganisation(m.state.Projects, m.state.Organisations, p.ID); ok {
			d.Organisation = &o
		}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i].Project, details[j].Project
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	index := make(map[string]int, len(details))
	for i, d := range details {
		index[d.Project.ID] = i
	}

	requests := make([]RequestDetail, 0)
	for _, r := range m.state.Requests.List() {
		requests = append(requests, RequestTargets(r, orgs, projects, profiles))
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Request.Pending() && !requests[j].Request.Pending()
	})

	m.projects = details
	m.byProject = index
	m.requests = requests
}

// ProjectsOf is a convenience for views restricted to one organisation.
func ProjectsOf(details []ProjectDetail, orgID string) []ProjectDetail {
	return filter(details, func(d ProjectDetail) bool { return orgID != "" && d.Project.OrgID == orgID })
}

// PendingOnly keeps the requests still awaiting a decision.
func PendingOnly(details []RequestDetail) []RequestDetail {
	return filter(details, func(d RequestDetail) bool { return d.Request.Status == models.RequestPending })
}
