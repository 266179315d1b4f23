package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - select column / cursor left
	ActionRight            // D, Right arrow - select column / cursor right
	ActionUp               // W, Up arrow - shift column up / cursor up
	ActionDown             // S, Down arrow - shift column down / cursor down
	ActionZoom             // Z - toggle fast-forward
	ActionHurry            // H, + - raise the spawn rate
	ActionRestart          // R - restart the level keeping edits
	ActionReload           // L - reload the level from its source
	ActionNextLevel        // N, PgDn
	ActionPrevLevel        // B, PgUp
	ActionEdit             // E - toggle the tile editor
	ActionSave             // Ctrl+S - save the edited level
	ActionDelayUp          // ] - start delay up
	ActionDelayDown        // [ - start delay down
	ActionMute             // M - toggle audio
	ActionPause            // P, Space - pause/unpause game
	ActionQuit             // Q, Ctrl+C - exit game/session

	// Editor part toggles, keys 1-8.
	ActionToggleFlat
	ActionToggleSlantUp
	ActionToggleSlantDown
	ActionToggleTransitionTop
	ActionToggleTransitionBottom
	ActionToggleBlock
	ActionToggleSpikesUp
	ActionToggleSpikesDown
)

var actionNames = map[Action]string{
	ActionNone:                   "None",
	ActionLeft:                   "Left",
	ActionRight:                  "Right",
	ActionUp:                     "Up",
	ActionDown:                   "Down",
	ActionZoom:                   "Zoom",
	ActionHurry:                  "Hurry",
	ActionRestart:                "Restart",
	ActionReload:                 "Reload",
	ActionNextLevel:              "NextLevel",
	ActionPrevLevel:              "PrevLevel",
	ActionEdit:                   "Edit",
	ActionSave:                   "Save",
	ActionDelayUp:                "DelayUp",
	ActionDelayDown:              "DelayDown",
	ActionMute:                   "Mute",
	ActionPause:                  "Pause",
	ActionQuit:                   "Quit",
	ActionToggleFlat:             "ToggleFlat",
	ActionToggleSlantUp:          "ToggleSlantUp",
	ActionToggleSlantDown:        "ToggleSlantDown",
	ActionToggleTransitionTop:    "ToggleTransitionTop",
	ActionToggleTransitionBottom: "ToggleTransitionBottom",
	ActionToggleBlock:            "ToggleBlock",
	ActionToggleSpikesUp:         "ToggleSpikesUp",
	ActionToggleSpikesDown:       "ToggleSpikesDown",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ToggleActions lists the editor part toggles in key order.
func ToggleActions() []Action {
	return []Action{
		ActionToggleFlat,
		ActionToggleSlantUp,
		ActionToggleSlantDown,
		ActionToggleTransitionTop,
		ActionToggleTransitionBottom,
		ActionToggleBlock,
		ActionToggleSpikesUp,
		ActionToggleSpikesDown,
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds an input frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
