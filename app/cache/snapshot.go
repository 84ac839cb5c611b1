// Package cache keeps a local sqlite copy of the entity stores so a
// restarted process can serve pages before the first backend sync lands.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"estate-go/app/store"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Snapshots persists store.Snapshot values, one row per collection.
type Snapshots struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*Snapshots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &Snapshots{db: db}, nil
}

func (s *Snapshots) Close() error {
	return s.db.Close()
}

// Save writes every loaded collection of snap. Collections that were not
// loaded keep their previous row.
func (s *Snapshots) Save(snap store.Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := buckets(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for bucket, payload := range rows {
		if _, err := tx.Exec(
			`INSERT INTO snapshot(bucket, payload) VALUES(?, ?)
			 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			bucket, payload,
		); err != nil {
			return fmt.Errorf("write %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}

// Load reads back the stored snapshot. Buckets never saved stay nil.
func (s *Snapshots) Load() (store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap store.Snapshot
	rows, err := s.db.Query(`SELECT bucket, payload FROM snapshot`)
	if err != nil {
		return snap, fmt.Errorf("select snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return snap, fmt.Errorf("scan: %w", err)
		}
		var target any
		switch bucket {
		case store.ProfilesName:
			target = &snap.Profiles
		case store.OrganisationsName:
			target = &snap.Organisations
		case store.ProjectsName:
			target = &snap.Projects
		case store.TasksName:
			target = &snap.Tasks
		case store.PhasesName:
			target = &snap.Phases
		case store.RequestsName:
			target = &snap.Requests
		default:
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return snap, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	return snap, rows.Err()
}

func buckets(snap store.Snapshot) (map[string][]byte, error) {
	out := map[string][]byte{}
	add := func(bucket string, loaded bool, v any) error {
		if !loaded {
			return nil
		}
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		out[bucket] = payload
		return nil
	}
	for _, b := range []struct {
		name   string
		loaded bool
		v      any
	}{
		{store.ProfilesName, snap.Profiles != nil, snap.Profiles},
		{store.OrganisationsName, snap.Organisations != nil, snap.Organisations},
		{store.ProjectsName, snap.Projects != nil, snap.Projects},
		{store.TasksName, snap.Tasks != nil, snap.Tasks},
		{store.PhasesName, snap.Phases != nil, snap.Phases},
		{store.RequestsName, snap.Requests != nil, snap.Requests},
	} {
		if err := add(b.name, b.loaded, b.v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
