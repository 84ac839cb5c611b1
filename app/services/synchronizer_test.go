package services_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"estate-go/app/models"
	"estate-go/app/services"
	"estate-go/app/store"

	"github.com/labstack/gommon/log"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func TestSynchronizer_Refresh(t *testing.T) {
	state := store.NewContainer()

	refreshed := 0
	syncer := services.NewSynchronizer(time.Minute, quietLogger(),
		services.Track(state.Projects, func(context.Context) ([]models.Project, error) {
			return []models.Project{{ID: "p1", OrgID: "o1"}}, nil
		}),
		services.Track(state.Organisations, func(context.Context) ([]models.Organisation, error) {
			return []models.Organisation{{ID: "o1"}}, nil
		}),
	)
	syncer.OnRefresh(func() { refreshed++ })

	if err := syncer.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !state.Projects.Loaded() || !state.Organisations.Loaded() {
		t.Fatal("both collections should be loaded")
	}
	if state.Tasks.Loaded() {
		t.Fatal("untracked collections stay unloaded")
	}
	if refreshed != 1 {
		t.Errorf("OnRefresh: want 1 call, got %d", refreshed)
	}
}

func TestSynchronizer_FailingStepDoesNotBlockOthers(t *testing.T) {
	state := store.NewContainer()
	boom := errors.New("backend down")

	refreshed := false
	syncer := services.NewSynchronizer(time.Minute, quietLogger(),
		services.Track(state.Tasks, func(context.Context) ([]models.Task, error) {
			return nil, boom
		}),
		services.Track(state.Phases, func(context.Context) ([]models.Phase, error) {
			return []models.Phase{{ID: "ph1"}}, nil
		}),
	)
	syncer.OnRefresh(func() { refreshed = true })

	err := syncer.Refresh(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	if state.Tasks.Loaded() {
		t.Error("failed collection must stay unloaded")
	}
	if !state.Phases.Loaded() {
		t.Error("healthy collection should load")
	}
	if refreshed {
		t.Error("OnRefresh must not run after a failed refresh")
	}
}

func TestSynchronizer_DropsLoadOvertakenByLocalWrite(t *testing.T) {
	state := store.NewContainer()

	syncer := services.NewSynchronizer(time.Minute, quietLogger(),
		services.Track(state.Tasks, func(context.Context) ([]models.Task, error) {
			// a write confirmed by the backend lands while the list query runs
			state.Tasks.Put(models.Task{ID: "written-meanwhile"})
			return []models.Task{{ID: "listed"}}, nil
		}),
	)
	if err := syncer.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := state.Tasks.Get("written-meanwhile"); !ok {
		t.Error("stale load must not overwrite a newer local write")
	}
	if _, ok := state.Tasks.Get("listed"); ok {
		t.Error("stale load must be dropped")
	}
}

func TestSynchronizer_CancelledContextLeavesStoresAlone(t *testing.T) {
	state := store.NewContainer()
	ctx, cancel := context.WithCancel(context.Background())

	syncer := services.NewSynchronizer(time.Minute, quietLogger(),
		services.Track(state.Requests, func(context.Context) ([]models.Request, error) {
			cancel()
			return []models.Request{{ID: "r1"}}, nil
		}),
	)
	if err := syncer.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if state.Requests.Loaded() {
		t.Error("cancelled load must not be applied")
	}
}

func TestSynchronizer_RunStopsOnCancel(t *testing.T) {
	state := store.NewContainer()
	var calls atomic.Int32

	syncer := services.NewSynchronizer(5*time.Millisecond, quietLogger(),
		services.Track(state.Profiles, func(context.Context) ([]models.Profile, error) {
			calls.Add(1)
			return nil, nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		syncer.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("Run did not refresh periodically")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
