package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/opdozitz/internal/core"
)

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Zoom      key.Binding
	Hurry     key.Binding
	Restart   key.Binding
	Reload    key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Edit      key.Binding
	Save      key.Binding
	DelayUp   key.Binding
	DelayDown key.Binding
	Mute      key.Binding
	Pause     key.Binding
	Back      key.Binding
	Quit      key.Binding
	Parts     []key.Binding // editor part toggles, in core.ToggleActions order
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Zoom, k.Hurry, k.Edit, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Zoom, k.Hurry, k.Pause, k.Mute},
		{k.Restart, k.Reload, k.NextLevel, k.PrevLevel},
		{k.Edit, k.Save, k.DelayUp, k.DelayDown},
		{k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the default play and editor bindings.
func DefaultGameKeyMap() GameKeyMap {
	parts := []struct{ key, help string }{
		{"1", "flat"},
		{"2", "slant up"},
		{"3", "slant down"},
		{"4", "transition top"},
		{"5", "transition bottom"},
		{"6", "block"},
		{"7", "spikes up"},
		{"8", "spikes down"},
	}
	toggles := make([]key.Binding, len(parts))
	for i, p := range parts {
		toggles[i] = key.NewBinding(key.WithKeys(p.key), key.WithHelp(p.key, p.help))
	}

	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "select left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "select right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "shift up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "shift down"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "fast forward"),
		),
		Hurry: key.NewBinding(
			key.WithKeys("h", "+"),
			key.WithHelp("h", "hurry"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Reload: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "reload level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("b", "pgup"),
			key.WithHelp("b", "prev level"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "editor"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save level"),
		),
		DelayUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "delay +"),
		),
		DelayDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "delay -"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Parts: toggles,
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit, true
	}

	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Zoom, core.ActionZoom},
		{k.Hurry, core.ActionHurry},
		{k.Restart, core.ActionRestart},
		{k.Reload, core.ActionReload},
		{k.NextLevel, core.ActionNextLevel},
		{k.PrevLevel, core.ActionPrevLevel},
		{k.Edit, core.ActionEdit},
		{k.Save, core.ActionSave},
		{k.DelayUp, core.ActionDelayUp},
		{k.DelayDown, core.ActionDelayDown},
		{k.Mute, core.ActionMute},
		{k.Pause, core.ActionPause},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}

	for i, a := range core.ToggleActions() {
		if i < len(k.Parts) && key.Matches(msg, k.Parts[i]) {
			return a, false
		}
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// IsBack reports whether the key asks to leave the game for the menu.
func (km *KeyMapper) IsBack(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Back)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
