package services

import (
	"context"
	"fmt"

	"estate-go/app/models"
	"estate-go/app/store"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// RequestService handles approval requests.
type RequestService struct {
	driver   neo4j.DriverWithContext
	requests *store.Collection[models.Request]
}

func NewRequestService(driver neo4j.DriverWithContext, state *store.Container) *RequestService {
	return &RequestService{driver: driver, requests: state.Requests}
}

func (s *RequestService) ListRequests(ctx context.Context) ([]models.Request, error) {
	return readAll(ctx, s.driver,
		"MATCH (r:Request) "+
			"OPTIONAL MATCH (r)-[:FOR_ORG]->(o:Organisation) "+
			"OPTIONAL MATCH (r)-[:FOR_PROJECT]->(p:Project) "+
			"OPTIONAL MATCH (r)-[:REQUESTED_BY]->(u:Profile) "+
			"RETURN r.id AS id, r.kind AS kind, r.note AS note, r.status AS status, r.decided_by AS decided_by, "+
			"o.id AS org_id, p.id AS project_id, u.id AS requester_id",
		nil,
		func(r *neo4j.Record) models.Request {
			return models.Request{
				ID:          str(r, "id"),
				Kind:        str(r, "kind"),
				OrgID:       str(r, "org_id"),
				ProjectID:   str(r, "project_id"),
				RequesterID: str(r, "requester_id"),
				Note:        str(r, "note"),
				Status:      str(r, "status"),
				DecidedBy:   str(r, "decided_by"),
			}
		},
	)
}

// CreateRequest files a pending request against an organisation and,
// optionally, one of its projects.
func (s *RequestService) CreateRequest(ctx context.Context, req *models.Request) (*models.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (o:Organisation {id: $org_id}) "+
				"CREATE (r:Request {id: $id, kind: $kind, note: $note, status: $status})-[:FOR_ORG]->(o) "+
				"RETURN r.id",
			map[string]any{
				"id":     req.ID,
				"kind":   req.Kind,
				"note":   req.Note,
				"status": req.Status,
				"org_id": req.OrgID,
			},
		)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("organisation %s: %w", req.OrgID, ErrNotFound)
		}

		if req.ProjectID != "" {
			found, err = matched(ctx, tx,
				"MATCH (r:Request {id: $id}), (p:Project {id: $project_id}) "+
					"CREATE (r)-[:FOR_PROJECT]->(p) RETURN p.id",
				map[string]any{"id": req.ID, "project_id": req.ProjectID},
			)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
			}
		}

		if req.RequesterID != "" {
			_, err = tx.Run(ctx,
				"MATCH (r:Request {id: $id}), (u:Profile {id: $requester_id}) "+
					"CREATE (r)-[:REQUESTED_BY]->(u)",
				map[string]any{"id": req.ID, "requester_id": req.RequesterID},
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.requests.Put(*req)
	return req, nil
}

// DecideRequest approves or rejects a pending request.
func (s *RequestService) DecideRequest(ctx context.Context, requestID, status, deciderID string) error {
	if err := models.ValidateDecision(status); err != nil {
		return err
	}
	if _, err := decidable(s.requests, requestID); err != nil {
		return err
	}

	err := writeTx(ctx, s.driver, func(tx neo4j.ManagedTransaction) error {
		found, err := matched(ctx, tx,
			"MATCH (r:Request {id: $id}) WHERE r.status = $pending "+
				"SET r.status = $status, r.decided_by = $decided_by "+
				"RETURN r.id",
			map[string]any{
				"id":         requestID,
				"pending":    models.RequestPending,
				"status":     status,
				"decided_by": deciderID,
			},
		)
		if err != nil {
			return err
		}
		if !found {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	applyDecision(s.requests, requestID, status, deciderID)
	return nil
}

// decidable returns the request if it is known and still pending.
func decidable(requests *store.Collection[models.Request], requestID string) (models.Request, error) {
	current, ok := requests.Get(requestID)
	if !ok {
		return current, fmt.Errorf("request %s: %w", requestID, ErrNotFound)
	}
	if !current.Pending() {
		return current, fmt.Errorf("request is %s: %w", current.Status, ErrConflict)
	}
	return current, nil
}

// applyDecision mirrors a committed decision in the store.
func applyDecision(requests *store.Collection[models.Request], requestID, status, deciderID string) {
	current, ok := requests.Get(requestID)
	if !ok {
		return
	}
	current.Status = status
	current.DecidedBy = deciderID
	requests.Put(current)
}
