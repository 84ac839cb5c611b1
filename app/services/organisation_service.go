package services

import (
	"context"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// OrganisationService handles organisation-related operations.
type OrganisationService struct {
	driver        neo4j.DriverWithContext
	organisations *store.Collection[models.Organisation]
}

func NewOrganisationService(driver neo4j.DriverWithContext, state *store.Container) *OrganisationService {
	return &OrganisationService{driver: driver, organisations: state.Organisations}
}

func (s *OrganisationService) ListOrganisations(ctx context.Context) ([]models.Organisation, error) {
	return readAll(ctx, s.driver,
		"MATCH (o:Organisation) RETURN o.id AS id, o.name AS name, o.admin_id AS admin_id",
		nil,
		func(r *neo4j.Record) models.Organisation {
			return models.Organisation{
				ID:      str(r, "id"),
				Name:    str(r, "name"),
				AdminID: str(r, "admin_id"),
			}
		},
	)
}

// CreateOrganisation adds a new organisation. Its admin, when set, becomes a member.
func (s *OrganisationService) CreateOrganisation(ctx context.Context, org *models.Organisation) (*models.Organisation, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if org.ID == "" {
		org.ID = uuid.New().String()
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		_, err := tx.Run(ctx,
			"CREATE (o:Organisation {id: $id, name: $name, admin_id: $admin_id})",
			map[string]any{"id": org.ID, "name": org.Name, "admin_id": org.AdminID},
		)
		if err != nil {
			return err
		}
		if org.AdminID == "" {
			return nil
		}
		_, err = tx.Run(ctx,
			"MATCH (o:Organisation {id: $id}), (u:Profile {id: $admin_id}) "+
				"MERGE (u)-[:MEMBER_OF]->(o)",
			map[string]any{"id": org.ID, "admin_id": org.AdminID},
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.organisations.Put(*org)
	return org, nil
}
