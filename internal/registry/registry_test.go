package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/opdozitz/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

type summarizedGame struct{ fakeGame }

func (g *summarizedGame) Summary() string { return "rolls slowly" }

func register(id string) {
	Register(id, func() Game { return &fakeGame{id: id} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("fake_b")
	register("fake_a")

	if !Exists("fake_a") {
		t.Error("Exists(fake_a) = false, expected true")
	}
	if Exists("fake_missing") {
		t.Error("Exists(fake_missing) = true, expected false")
	}

	g, err := Create("fake_b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "fake_b" {
		t.Errorf("ID() = %q, expected %q", g.ID(), "fake_b")
	}

	other, _ := Create("fake_b")
	if other == g {
		t.Error("Create() should return a fresh instance")
	}

	if _, err := Create("fake_missing"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Create(fake_missing) error = %v, expected ErrUnknownMode", err)
	}
}

func TestListSortedWithTitles(t *testing.T) {
	register("list_z")
	register("list_m")

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "list_m" && info.Title != "Fake list_m" {
			t.Errorf("Title = %q, expected %q", info.Title, "Fake list_m")
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List() not sorted: %v", ids)
			break
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register("dup")
	defer func() {
		if recover() == nil {
			t.Error("second Register(dup) should panic")
		}
	}()
	register("dup")
}

func TestRegisterRejectsBrokenModes(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		factory Factory
	}{
		{"empty id", "", func() Game { return &fakeGame{} }},
		{"nil factory", "nil_factory", nil},
		{"id mismatch", "bad_id", func() Game { return &fakeGame{id: "other_id"} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) should panic", tc.id)
				}
			}()
			Register(tc.id, tc.factory)
		})
	}

	if Exists("nil_factory") || Exists("bad_id") {
		t.Error("rejected modes should not be registered")
	}
}

func TestListCarriesSummary(t *testing.T) {
	Register("summary_a", func() Game { return &summarizedGame{fakeGame{id: "summary_a"}} })
	register("summary_b")

	found := 0
	for _, info := range List() {
		switch info.ID {
		case "summary_a":
			found++
			if info.Summary != "rolls slowly" {
				t.Errorf("Summary = %q, expected %q", info.Summary, "rolls slowly")
			}
		case "summary_b":
			found++
			if info.Summary != "" {
				t.Errorf("Summary = %q, expected empty", info.Summary)
			}
		}
	}
	if found != 2 {
		t.Errorf("List() returned %d of the 2 registered modes", found)
	}
}
