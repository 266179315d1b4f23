package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func testLevels() []level.Level {
	return []level.Level{
		{Number: 1, Name: "First Steps"},
		{Number: 4, Name: "Spikes"},
	}
}

func TestMenuPicksLevel(t *testing.T) {
	m := NewMenuModel(testLevels(), core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if m.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, expected 1", m.StartLevel())
	}

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.StartLevel() != 4 {
		t.Errorf("StartLevel() = %d, expected 4", m.StartLevel())
	}
	if !strings.Contains(m.View(), "Level 4: Spikes") {
		t.Error("View() should show the picked level")
	}

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, expected 1", m.StartLevel())
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		expected MenuResult
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuResult{GameID: "stub", StartLevel: 1}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuResult{WantsScoreboard: true, StartLevel: 1}},
		{"q", runeKey("q"), MenuResult{Quit: true, StartLevel: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(testLevels(), testConfig)
			m = menuUpdate(t, m, tt.key)
			got := m.Result()
			got.Config = core.RuntimeConfig{}
			if got != tt.expected {
				t.Errorf("Result() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestMenuWithoutLevels(t *testing.T) {
	m := NewMenuModel(nil, testConfig)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.StartLevel() != level.MinNumber {
		t.Errorf("StartLevel() = %d, expected %d", m.StartLevel(), level.MinNumber)
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(testLevels(), testConfig)
	m = menuUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("Config() = %dx%d, expected 120x50", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestMenuShowsModeSummary(t *testing.T) {
	m := NewMenuModel(testLevels(), testConfig)
	if len(m.items) == 0 {
		t.Fatal("menu has no modes")
	}
	m.width = 100
	m.items[0].Summary = "zits ride the columns you move"
	if !strings.Contains(m.View(), "zits ride the columns you move") {
		t.Error("View() should show the highlighted mode's summary")
	}
}
