package services

import (
	"context"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type PhaseService struct {
	driver neo4j.DriverWithContext
	phases *store.Collection[models.Phase]
}

func NewPhaseService(driver neo4j.DriverWithContext, state *store.Container) *PhaseService {
	return &PhaseService{driver: driver, phases: state.Phases}
}

func (s *PhaseService) ListPhases(ctx context.Context) ([]models.Phase, error) {
	return readAll(ctx, s.driver,
		"MATCH (ph:Phase) "+
			"OPTIONAL MATCH (ph)-[:PHASE_OF]->(p:Project) "+
			"RETURN ph.id AS id, ph.name AS name, ph.position AS position, ph.status AS status, p.id AS project_id",
		nil,
		func(r *neo4j.Record) models.Phase {
			return models.Phase{
				ID:        str(r, "id"),
				Name:      str(r, "name"),
				ProjectID: str(r, "project_id"),
				Position:  integer(r, "position"),
				Status:    str(r, "status"),
			}
		},
	)
}

func (s *PhaseService) CreatePhase(ctx context.Context, phase *models.Phase) (*models.Phase, error) {
	if err := phase.Validate(); err != nil {
		return nil, err
	}
	if phase.ID == "" {
		phase.ID = uuid.New().String()
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (p:Project {id: $project_id}) "+
				"CREATE (ph:Phase {id: $id, name: $name, position: $position, status: $status})-[:PHASE_OF]->(p) "+
				"RETURN ph.id",
			map[string]any{
				"id":         phase.ID,
				"name":       phase.Name,
				"position":   int64(phase.Position),
				"status":     phase.Status,
				"project_id": phase.ProjectID,
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

	s.phases.Put(*phase)
	return phase, nil
}
