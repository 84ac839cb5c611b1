package services

import (
	"context"
	"fmt"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ProjectService handles project-related operations.
type ProjectService struct {
	driver   neo4j.DriverWithContext
	state    *store.Container
	projects *store.Collection[models.Project]
}

func NewProjectService(driver neo4j.DriverWithContext, state *store.Container) *ProjectService {
	return &ProjectService{driver: driver, state: state, projects: state.Projects}
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return readAll(ctx, s.driver,
		"MATCH (p:Project) "+
			"OPTIONAL MATCH (p)-[:BELONGS_TO]->(o:Organisation) "+
			"RETURN p.id AS id, p.name AS name, p.status AS status, p.address AS address, o.id AS org_id",
		nil,
		func(r *neo4j.Record) models.Project {
			return models.Project{
				ID:      str(r, "id"),
				Name:    str(r, "name"),
				OrgID:   str(r, "org_id"),
				Status:  str(r, "status"),
				Address: str(r, "address"),
			}
		},
	)
}

// CreateProject adds a project under an existing organisation.
func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (o:Organisation {id: $org_id}) "+
				"CREATE (p:Project {id: $id, name: $name, status: $status, address: $address})-[:BELONGS_TO]->(o) "+
				"RETURN p.id",
			map[string]any{
				"id":      project.ID,
				"name":    project.Name,
				"status":  project.Status,
				"address": project.Address,
				"org_id":  project.OrgID,
			},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.projects.Put(*project)
	return project, nil
}

func (s *ProjectService) UpdateProjectStatus(ctx context.Context, projectID, status string) error {
	if err := models.ValidateProjectStatus(status); err != nil {
		return err
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (p:Project {id: $id}) SET p.status = $status RETURN p.id",
			map[string]any{"id": projectID, "status": status},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if p, ok := s.projects.Get(projectID); ok {
		p.Status = status
		s.projects.Put(p)
	}
	return nil
}

// DeleteProject deletes a project together with its phases and tasks.
// Requests that pointed at the project keep their organisation only.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (p:Project {id: $id}) RETURN p.id",
			map[string]any{"id": projectID},
		)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}

		// First, remove phases and tasks
		_, err = tx.Run(ctx,
			"MATCH (child)-[:PHASE_OF|PART_OF]->(p:Project {id: $id}) "+
				"DETACH DELETE child",
			map[string]any{"id": projectID},
		)
		if err != nil {
			return err
		}

		_, err = tx.Run(ctx,
			"MATCH (p:Project {id: $id}) DETACH DELETE p",
			map[string]any{"id": projectID},
		)
		return err
	})
	if err != nil {
		return err
	}

	applyProjectDeleted(s.state, projectID)
	return nil
}

// applyProjectDeleted mirrors a committed project deletion in the stores.
func applyProjectDeleted(state *store.Container, projectID string) {
	for _, ph := range state.Phases.Filter(func(ph models.Phase) bool { return ph.ProjectID == projectID }) {
		state.Phases.Delete(ph.ID)
	}
	for _, t := range state.Tasks.Filter(func(t models.Task) bool { return t.ProjectID == projectID }) {
		state.Tasks.Delete(t.ID)
	}
	for _, r := range state.Requests.Filter(func(r models.Request) bool { return r.ProjectID == projectID }) {
		r.ProjectID = ""
		state.Requests.Put(r)
	}
	state.Projects.Delete(projectID)
}
