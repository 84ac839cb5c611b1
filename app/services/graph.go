package services

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	// ErrNotFound: a record the operation depends on does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the record is not in a state that allows the operation.
	ErrConflict = errors.New("conflict")
)

// readAll runs a read query and scans every record.
func readAll[T any](ctx context.Context, driver neo4j.DriverWithContext, cypher string, params map[string]any, scan func(*neo4j.Record) T) ([]T, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		items := []T{}
		for res.Next(ctx) {
			items = append(items, scan(res.Record()))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// writeTx runs work in one write transaction. Returning an error from work
// rolls the transaction back.
func writeTx(ctx context.Context, driver neo4j.DriverWithContext, work func(tx neo4j.ManagedTransaction) error) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(tx)
	})
	return err
}

// matched runs a statement and reports whether it produced at least one record.
func matched(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (bool, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return false, err
	}
	found := res.Next(ctx)
	if err := res.Err(); err != nil {
		return false, err
	}
	return found, nil
}

func str(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolean(record *neo4j.Record, key string) bool {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func integer(record *neo4j.Record, key string) int {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return 0
	}
	i, _ := v.(int64)
	return int(i)
}
