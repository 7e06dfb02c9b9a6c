package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/basic3d/internal/engine/input"
)

// Keyboard is an input.Provider reading SDL's key state array. An action
// is down when any of its keys is held.
type Keyboard struct {
	keys [][]sdl.Scancode
}

// NewKeyboard resolves bindings of action names to SDL key names such as
// "Up", "Space" or "Z".
func NewKeyboard(bindings map[string][]string) (*Keyboard, error) {
	k := &Keyboard{keys: make([][]sdl.Scancode, len(input.Actions()))}
	for name, keyNames := range bindings {
		action, ok := input.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		for _, keyName := range keyNames {
			code := sdl.GetScancodeFromName(keyName)
			if code == sdl.SCANCODE_UNKNOWN {
				return nil, fmt.Errorf("action %s: unknown key %q", name, keyName)
			}
			k.keys[action] = append(k.keys[action], code)
		}
	}
	return k, nil
}

// IsDown implements input.Provider.
func (k *Keyboard) IsDown(a input.Action) bool {
	state := sdl.GetKeyboardState()
	for _, code := range k.keys[a] {
		if int(code) < len(state) && state[code] != 0 {
			return true
		}
	}
	return false
}

// Ticks is a timer.Clock backed by SDL's millisecond counter.
type Ticks struct{}

// NowMillis implements timer.Clock.
func (Ticks) NowMillis() int64 {
	return int64(sdl.GetTicks64())
}
