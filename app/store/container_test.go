package store_test

import (
	"encoding/json"
	"testing"

	"estate-go/app/models"
	"estate-go/app/store"
	"github.com/google/go-cmp/cmp"
)

func TestContainer_TasksAssignedTo(t *testing.T) {
	c := store.NewContainer()
	c.Tasks.Load([]models.Task{
		{ID: "t1", Assignee: "u1"},
		{ID: "t2", Assignee: "u2"},
		{ID: "t3", Assignee: "u1"},
		{ID: "t4"},
	})

	for name, tc := range map[string]struct {
		assignee string
		want     []string
	}{
		"known assignee":   {assignee: "u1", want: []string{"t1", "t3"}},
		"unknown assignee": {assignee: "nobody", want: []string{}},
		"empty assignee":   {assignee: "", want: []string{}},
	} {
		t.Run(name, func(t *testing.T) {
			got := []string{}
			for _, task := range c.TasksAssignedTo(tc.assignee) {
				got = append(got, task.ID)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestContainer_ExportImportThroughJSON(t *testing.T) {
	src := store.NewContainer()
	src.Organisations.Load([]models.Organisation{{ID: "o1", Name: "Acme"}})
	src.Projects.Load([]models.Project{{ID: "p1", Name: "Tower", OrgID: "o1"}})
	src.Tasks.Load(nil)

	payload, err := json.Marshal(src.ExportState())
	if err != nil {
		t.Fatal(err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatal(err)
	}

	dst := store.NewContainer()
	dst.ImportState(snap)

	if !dst.Organisations.Loaded() || !dst.Projects.Loaded() {
		t.Fatal("loaded collections should be restored")
	}
	if !dst.Tasks.Loaded() || dst.Tasks.Len() != 0 {
		t.Fatal("an empty loaded collection should be restored as loaded and empty")
	}
	if dst.Profiles.Loaded() {
		t.Fatal("a collection that was never loaded must stay unloaded")
	}
	if p, _ := dst.Projects.Get("p1"); p.OrgID != "o1" {
		t.Errorf("unexpected project: %+v", p)
	}
}

func TestContainer_ImportKeepsFresherData(t *testing.T) {
	c := store.NewContainer()
	c.Projects.Load([]models.Project{{ID: "fresh"}})

	c.ImportState(store.Snapshot{Projects: []models.Project{{ID: "cached"}}})

	if _, ok := c.Projects.Get("fresh"); !ok {
		t.Fatal("snapshot must not replace an already loaded collection")
	}
}

func TestContainer_Reset(t *testing.T) {
	c := store.NewContainer()
	c.Profiles.Load([]models.Profile{{ID: "u1"}})
	c.Requests.Load([]models.Request{{ID: "r1"}})

	c.Reset()

	for _, col := range c.Collections() {
		if col.Loaded() || col.Len() != 0 {
			t.Errorf("%s: want empty and unloaded after Reset", col.Name())
		}
	}
}
