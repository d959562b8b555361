// Package backend defines the seam between the core and a concrete
// host surface: presenting a frame buffer and collecting key events.
// None of the core's bit-accuracy invariants depend on a Display
// implementation (§1's "external collaborators").
package backend

import (
	"github.com/kalida-labs/dmgo/input"
	"github.com/kalida-labs/dmgo/video"
)

// EventType distinguishes a key going down from a key coming up.
type EventType int

const (
	Press EventType = iota
	Release
)

// InputEvent is a single host key transition, already resolved to a
// guest Button by the backend's keymap.
type InputEvent struct {
	Button input.Button
	Type   EventType
}

// Display is a host output surface. Implementations must not block
// indefinitely in PollInput: it is called once per frame from the host
// loop in cmd/emulator.
type Display interface {
	Present(*video.FrameBuffer) error
	PollInput() []InputEvent
	Close() error
}
