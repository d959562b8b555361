// Package input defines the joypad button set and the contractual
// default keyboard mapping (§6), independent of any specific UI
// toolkit so it can be shared across backends.
package input

// Button identifies one of the 8 physical joypad inputs.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

func (b Button) String() string {
	switch b {
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case A:
		return "A"
	case B:
		return "B"
	case Select:
		return "Select"
	case Start:
		return "Start"
	default:
		return "Unknown"
	}
}

// KeyName is a toolkit-independent identifier for a physical key: either
// a printable rune ("z", "x") or one of the named keys below.
type KeyName string

const (
	KeyUp        KeyName = "Up"
	KeyDown      KeyName = "Down"
	KeyLeft      KeyName = "Left"
	KeyRight     KeyName = "Right"
	KeyEnter     KeyName = "Enter"
	KeyBackspace KeyName = "Backspace"
)

// Keymap resolves a host key name to a Button. The zero value is not
// usable; build one with NewDefaultKeymap or load a custom mapping.
type Keymap struct {
	bindings map[KeyName]Button
}

// NewDefaultKeymap returns the contractual default mapping (§6):
// arrows to the D-pad, Z/X to A/B, Enter/Backspace to Start/Select.
func NewDefaultKeymap() *Keymap {
	return &Keymap{
		bindings: map[KeyName]Button{
			KeyUp:        Up,
			KeyDown:      Down,
			KeyLeft:      Left,
			KeyRight:     Right,
			"z":          A,
			"x":          B,
			KeyEnter:     Start,
			KeyBackspace: Select,
		},
	}
}

// NewKeymap builds a keymap from an explicit key-name -> button table,
// used when loading a user-supplied override (see cmd/emulator).
func NewKeymap(bindings map[KeyName]Button) *Keymap {
	return &Keymap{bindings: bindings}
}

// Resolve looks up the button bound to a key name, if any.
func (k *Keymap) Resolve(key KeyName) (Button, bool) {
	b, ok := k.bindings[key]
	return b, ok
}
