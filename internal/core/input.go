package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with intents rather than raw keys.
type Action int

const (
	ActionNone       Action = iota
	ActionLeftUp            // W - move left paddle up
	ActionLeftDown          // S - move left paddle down
	ActionLeftFire          // D - fire left gun
	ActionRightUp           // Up arrow - move right paddle up
	ActionRightDown         // Down arrow - move right paddle down
	ActionRightFire         // Left arrow - fire right gun
	ActionStart             // Space - start or resume the match
	ActionPause             // P - pause the match
	ActionReset             // R - reset scores and positions
	ActionToggleMode        // M - switch between 1v1 and 1vAI
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeftUp:
		return "LeftUp"
	case ActionLeftDown:
		return "LeftDown"
	case ActionLeftFire:
		return "LeftFire"
	case ActionRightUp:
		return "RightUp"
	case ActionRightDown:
		return "RightDown"
	case ActionRightFire:
		return "RightFire"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionReset:
		return "Reset"
	case ActionToggleMode:
		return "ToggleMode"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// opposite returns the action that cancels a held movement, if any.
func (a Action) opposite() Action {
	switch a {
	case ActionLeftUp:
		return ActionLeftDown
	case ActionLeftDown:
		return ActionLeftUp
	case ActionRightUp:
		return ActionRightDown
	case ActionRightDown:
		return ActionRightUp
	default:
		return ActionNone
	}
}

// InputSnapshot is the per-tick view of player input consumed by the simulation.
type InputSnapshot interface {
	// Held reports whether an action is currently held.
	Held(a Action) bool

	// Consume reports whether an action is held and clears it, so a second
	// Consume in the same tick returns false. Used for fire keys.
	Consume(a Action) bool
}

// InputFrame represents the input state sampled for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

var _ InputSnapshot = (*InputFrame)(nil)

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{
		Actions: make(map[Action]bool, len(actions)),
	}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Held implements InputSnapshot.
func (f *InputFrame) Held(a Action) bool {
	return f.Has(a)
}

// Consume implements InputSnapshot.
func (f *InputFrame) Consume(a Action) bool {
	if !f.Has(a) {
		return false
	}
	delete(f.Actions, a)
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

// DefaultHoldWindow is how long a key counts as held after its last press event.
const DefaultHoldWindow = 180 * time.Millisecond

// KeyState tracks held keys from a stream of press events.
//
// Terminals report presses and auto-repeats but not releases, so a key is
// considered held until HoldWindow passes without another event for it.
// Pressing a paddle's opposite direction releases the current one at once.
type KeyState struct {
	HoldWindow time.Duration
	lastPress  map[Action]time.Time
}

// NewKeyState creates a key state table. A non-positive window selects DefaultHoldWindow.
func NewKeyState(window time.Duration) *KeyState {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyState{
		HoldWindow: window,
		lastPress:  make(map[Action]time.Time),
	}
}

// Press records a press or auto-repeat event for an action.
func (k *KeyState) Press(a Action, now time.Time) {
	if a == ActionNone {
		return
	}
	if opp := a.opposite(); opp != ActionNone {
		delete(k.lastPress, opp)
	}
	k.lastPress[a] = now
}

// Release forgets an action immediately.
func (k *KeyState) Release(a Action) {
	delete(k.lastPress, a)
}

// Reset forgets every held action.
func (k *KeyState) Reset() {
	for a := range k.lastPress {
		delete(k.lastPress, a)
	}
}

// Snapshot samples the held actions at now. Expired entries are dropped.
func (k *KeyState) Snapshot(now time.Time) InputFrame {
	frame := NewInputFrame()
	for a, at := range k.lastPress {
		if now.Sub(at) > k.HoldWindow {
			delete(k.lastPress, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}
