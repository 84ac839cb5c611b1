package store

import "estate-go/app/models"

const (
	ProfilesName      = "profiles"
	OrganisationsName = "organisations"
	ProjectsName      = "projects"
	TasksName         = "tasks"
	PhasesName        = "phases"
	RequestsName      = "requests"
)

// Observable is the type-erased view of a Collection.
type Observable interface {
	Name() string
	Len() int
	Loaded() bool
	Subscribe(fn func(Change)) func()
}

// Container owns the entity collections shared by the whole process.
// It is filled at start-up and Reset at shutdown.
type Container struct {
	Profiles      *Collection[models.Profile]
	Organisations *Collection[models.Organisation]
	Projects      *Collection[models.Project]
	Tasks         *Collection[models.Task]
	Phases        *Collection[models.Phase]
	Requests      *Collection[models.Request]
}

func NewContainer() *Container {
	return &Container{
		Profiles:      NewCollection[models.Profile](ProfilesName),
		Organisations: NewCollection[models.Organisation](OrganisationsName),
		Projects:      NewCollection[models.Project](ProjectsName),
		Tasks:         NewCollection[models.Task](TasksName),
		Phases:        NewCollection[models.Phase](PhasesName),
		Requests:      NewCollection[models.Request](RequestsName),
	}
}

func (c *Container) Collections() []Observable {
	return []Observable{c.Profiles, c.Organisations, c.Projects, c.Tasks, c.Phases, c.Requests}
}

// TasksAssignedTo returns the tasks whose assignee is profileID.
// An empty profileID yields no tasks.
func (c *Container) TasksAssignedTo(profileID string) []models.Task {
	if profileID == "" {
		return []models.Task{}
	}
	return c.Tasks.Filter(models.AssignedTo(profileID))
}

func (c *Container) Reset() {
	for _, col := range []interface{ Reset() }{
		c.Profiles, c.Organisations, c.Projects, c.Tasks, c.Phases, c.Requests,
	} {
		col.Reset()
	}
}

// Snapshot is a serialisable copy of the loaded collections. A nil slice
// means the collection was not loaded when the snapshot was taken.
type Snapshot struct {
	Profiles      []models.Profile      `json:"profiles"`
	Organisations []models.Organisation `json:"organisations"`
	Projects      []models.Project      `json:"projects"`
	Tasks         []models.Task         `json:"tasks"`
	Phases        []models.Phase        `json:"phases"`
	Requests      []models.Request      `json:"requests"`
}

func (c *Container) ExportState() Snapshot {
	return Snapshot{
		Profiles:      export(c.Profiles),
		Organisations: export(c.Organisations),
		Projects:      export(c.Projects),
		Tasks:         export(c.Tasks),
		Phases:        export(c.Phases),
		Requests:      export(c.Requests),
	}
}

// ImportState loads every collection present in s. Collections that are
// already loaded are left alone: fresher data wins over a snapshot.
func (c *Container) ImportState(s Snapshot) {
	restore(c.Profiles, s.Profiles)
	restore(c.Organisations, s.Organisations)
	restore(c.Projects, s.Projects)
	restore(c.Tasks, s.Tasks)
	restore(c.Phases, s.Phases)
	restore(c.Requests, s.Requests)
}

func export[T Entity](col *Collection[T]) []T {
	if !col.Loaded() {
		return nil
	}
	return col.List()
}

func restore[T Entity](col *Collection[T], items []T) {
	if items == nil || col.Loaded() {
		return
	}
	col.FinishLoad(col.BeginLoad(), items)
}
