package services

import (
	"context"
	"fmt"
	"time"

	"estate-go/app/store"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// Step refreshes one collection from the backend.
type Step struct {
	name string
	run  func(ctx context.Context) (applied bool, err error)
}

func (s Step) Name() string { return s.name }

// Track binds a collection to the query that lists its records.
// A result that went stale while the query ran is dropped.
func Track[T store.Entity](col *store.Collection[T], list func(context.Context) ([]T, error)) Step {
	return Step{
		name: col.Name(),
		run: func(ctx context.Context) (bool, error) {
			gen := col.BeginLoad()
			items, err := list(ctx)
			if err != nil {
				return false, err
			}
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return col.FinishLoad(gen, items), nil
		},
	}
}

// Synchronizer populates the stores from the backend, once on start and
// then on every interval.
type Synchronizer struct {
	steps     []Step
	interval  time.Duration
	log       *log.Logger
	onRefresh []func()
}

func NewSynchronizer(interval time.Duration, logger *log.Logger, steps ...Step) *Synchronizer {
	return &Synchronizer{steps: steps, interval: interval, log: logger}
}

// OnRefresh registers fn to run after a refresh in which every step succeeded.
func (s *Synchronizer) OnRefresh(fn func()) {
	s.onRefresh = append(s.onRefresh, fn)
}

// Refresh loads every collection concurrently. A failing step does not stop
// the others; the first error is returned.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	var g errgroup.Group
	for _, step := range s.steps {
		step := step
		g.Go(func() error {
			applied, err := step.run(ctx)
			if err != nil {
				s.log.Errorf("sync %s: %v", step.name, err)
				return fmt.Errorf("sync %s: %w", step.name, err)
			}
			if !applied {
				s.log.Debugf("sync %s: stale result dropped", step.name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, fn := range s.onRefresh {
		fn()
	}
	return nil
}

// Run refreshes until ctx is cancelled.
func (s *Synchronizer) Run(ctx context.Context) {
	_ = s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}
