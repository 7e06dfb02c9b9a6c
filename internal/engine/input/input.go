// Package input tracks logical actions polled from a key-state provider.
package input

// Action is a logical game input.
type Action int

const (
	Forward Action = iota
	RotateLeft
	RotateRight
	Jump
	Attack
	Back
	CameraIn
	CameraOut
	CameraLeft
	CameraRight
	Fire
	FadeIn
	FadeOut
	Screenshot
	Quit
	actionCount
)

var actionNames = [actionCount]string{
	Forward:     "forward",
	RotateLeft:  "rotate_left",
	RotateRight: "rotate_right",
	Jump:        "jump",
	Attack:      "attack",
	Back:        "back",
	CameraIn:    "camera_in",
	CameraOut:   "camera_out",
	CameraLeft:  "camera_left",
	CameraRight: "camera_right",
	Fire:        "fire",
	FadeIn:      "fade_in",
	FadeOut:     "fade_out",
	Screenshot:  "screenshot",
	Quit:        "quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// Provider reports whether the key bound to an action is held right now.
type Provider interface {
	IsDown(a Action) bool
}

// State holds this frame's and last frame's raw key state so edges can be
// detected.
type State struct {
	current  [actionCount]bool
	previous [actionCount]bool
}

// Poll samples every action from p. Call once per frame.
func (s *State) Poll(p Provider) {
	s.previous = s.current
	for a := Action(0); a < actionCount; a++ {
		s.current[a] = p.IsDown(a)
	}
}

// Down reports whether a is held this frame.
func (s *State) Down(a Action) bool {
	return s.current[a]
}

// Pressed reports whether a went down this frame.
func (s *State) Pressed(a Action) bool {
	return s.current[a] && !s.previous[a]
}

// Released reports whether a went up this frame.
func (s *State) Released(a Action) bool {
	return !s.current[a] && s.previous[a]
}

// Manual is a Provider driven by code, used for scripted input and tests.
type Manual struct {
	down [actionCount]bool
}

// Press holds the given actions down.
func (m *Manual) Press(actions ...Action) {
	for _, a := range actions {
		m.down[a] = true
	}
}

// Release lets the given actions go.
func (m *Manual) Release(actions ...Action) {
	for _, a := range actions {
		m.down[a] = false
	}
}

// ReleaseAll lets every action go.
func (m *Manual) ReleaseAll() {
	m.down = [actionCount]bool{}
}

// IsDown implements Provider.
func (m *Manual) IsDown(a Action) bool {
	return m.down[a]
}
