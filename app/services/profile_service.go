package services

import (
	"context"
	"fmt"
	"strings"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ProfileService handles profile-related operations.
type ProfileService struct {
	driver   neo4j.DriverWithContext
	state    *store.Container
	profiles *store.Collection[models.Profile]
}

func NewProfileService(driver neo4j.DriverWithContext, state *store.Container) *ProfileService {
	return &ProfileService{driver: driver, state: state, profiles: state.Profiles}
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return readAll(ctx, s.driver,
		"MATCH (u:Profile) "+
			"OPTIONAL MATCH (u)-[:MEMBER_OF]->(o:Organisation) "+
			"RETURN u.id AS id, u.email AS email, u.name AS name, u.admin AS admin, o.id AS org_id",
		nil,
		func(r *neo4j.Record) models.Profile {
			return models.Profile{
				ID:    str(r, "id"),
				Email: str(r, "email"),
				Name:  str(r, "name"),
				Admin: boolean(r, "admin"),
				OrgID: str(r, "org_id"),
			}
		},
	)
}

// UpdateProfileName renames a profile.
func (s *ProfileService) UpdateProfileName(ctx context.Context, profileID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: profile name is required", models.ErrInvalid)
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (u:Profile {id: $id}) SET u.name = $name RETURN u.id",
			map[string]any{"id": profileID, "name": name},
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

	if p, ok := s.profiles.Get(profileID); ok {
		p.Name = name
		s.profiles.Put(p)
	}
	return nil
}

// DeleteProfile removes a profile and its relationships. Tasks assigned to
// it become unassigned.
func (s *ProfileService) DeleteProfile(ctx context.Context, profileID string) error {
	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		_, err := tx.Run(ctx,
			"MATCH (u:Profile {id: $id}) DETACH DELETE u",
			map[string]any{"id": profileID},
		)
		return err
	})
	if err != nil {
		return err
	}

	applyProfileDeleted(s.state, profileID)
	return nil
}

// applyProfileDeleted mirrors a committed profile deletion in the stores.
func applyProfileDeleted(state *store.Container, profileID string) {
	state.Profiles.Delete(profileID)
	for _, t := range state.Tasks.Filter(models.AssignedTo(profileID)) {
		t.Assignee = ""
		state.Tasks.Put(t)
	}
}
